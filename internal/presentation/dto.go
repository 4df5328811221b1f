package presentation

import (
	"time"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
)

// SnapshotDTO represents a stored snapshot for presentation. Body is only
// filled in for a single snapshot.
type SnapshotDTO struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Label     string    `json:"label,omitempty"`
	Nodes     int       `json:"nodes"`
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body,omitempty"`
}

// StatsDTO represents the shape of a directory tree.
type StatsDTO struct {
	Root     string `json:"root"`
	Nodes    int    `json:"nodes"`
	Leaves   int    `json:"leaves"`
	MaxDepth int    `json:"max_depth"`
}

// FromDomainSnapshot converts a snapshot to a DTO, with or without its body.
func FromDomainSnapshot(s *domain.Snapshot, withBody bool) SnapshotDTO {
	dto := SnapshotDTO{
		ID:        s.ID(),
		Root:      s.Root(),
		Label:     s.Label(),
		Nodes:     s.NodeCount(),
		CreatedAt: s.CreatedAt().UTC(),
	}
	if withBody {
		dto.Body = s.Body()
	}
	return dto
}

// FromDomainSnapshots converts a slice of snapshots to DTOs without bodies.
func FromDomainSnapshots(snaps []*domain.Snapshot) []SnapshotDTO {
	dtos := make([]SnapshotDTO, len(snaps))
	for i, s := range snaps {
		dtos[i] = FromDomainSnapshot(s, false)
	}
	return dtos
}

// FromStats converts tree statistics to a DTO.
func FromStats(root string, s dirtree.Statistics) StatsDTO {
	return StatsDTO{
		Root:     root,
		Nodes:    s.Nodes,
		Leaves:   s.Leaves,
		MaxDepth: s.MaxDepth,
	}
}
