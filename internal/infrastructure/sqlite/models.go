package sqlite

import (
	"time"

	"github.com/zjrosen/webwalker/internal/snapshots/domain"
)

// SnapshotModel is a row of the snapshots table.
type SnapshotModel struct {
	ID        string
	Root      string
	Label     *string // nullable
	Body      string
	NodeCount int
	CreatedAt int64 // Unix milliseconds
}

func toSnapshotModel(s *domain.Snapshot) *SnapshotModel {
	m := &SnapshotModel{
		ID:        s.ID(),
		Root:      s.Root(),
		Body:      s.Body(),
		NodeCount: s.NodeCount(),
		CreatedAt: s.CreatedAt().UnixMilli(),
	}
	if s.Label() != "" {
		label := s.Label()
		m.Label = &label
	}
	return m
}

func (m *SnapshotModel) toDomain() *domain.Snapshot {
	label := ""
	if m.Label != nil {
		label = *m.Label
	}
	return domain.ReconstituteSnapshot(m.ID, m.Root, label, m.Body, m.NodeCount, time.UnixMilli(m.CreatedAt))
}
