// Package domain holds the snapshot entity: a saved tree report together
// with where and when it was taken.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one saved rendering of a tree.
type Snapshot struct {
	id        string
	root      string
	label     string
	body      string
	nodeCount int
	createdAt time.Time
}

// NewSnapshot creates a snapshot with a fresh ID. body is the tree report
// exactly as written to the output file.
func NewSnapshot(root, label, body string, nodeCount int) (*Snapshot, error) {
	if strings.TrimSpace(root) == "" {
		return nil, ErrEmptyRoot
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}
	return &Snapshot{
		id:        uuid.NewString(),
		root:      root,
		label:     label,
		body:      body,
		nodeCount: nodeCount,
		createdAt: time.Now(),
	}, nil
}

// ReconstituteSnapshot rebuilds a snapshot loaded from storage.
func ReconstituteSnapshot(id, root, label, body string, nodeCount int, createdAt time.Time) *Snapshot {
	return &Snapshot{
		id:        id,
		root:      root,
		label:     label,
		body:      body,
		nodeCount: nodeCount,
		createdAt: createdAt,
	}
}

func (s *Snapshot) ID() string           { return s.id }
func (s *Snapshot) Root() string         { return s.root }
func (s *Snapshot) Label() string        { return s.label }
func (s *Snapshot) Body() string         { return s.body }
func (s *Snapshot) NodeCount() int       { return s.nodeCount }
func (s *Snapshot) CreatedAt() time.Time { return s.createdAt }

// ShortID returns the first eight characters of the ID, enough to select a
// snapshot on the command line.
func (s *Snapshot) ShortID() string {
	if len(s.id) <= 8 {
		return s.id
	}
	return s.id[:8]
}
