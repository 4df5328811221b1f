package testutil

import "time"

// snapshotData holds all data for a snapshot to be inserted.
type snapshotData struct {
	id        string
	root      string
	label     string
	body      string
	nodeCount int
	createdAt time.Time
}

// defaultSnapshot returns a one-node snapshot of "/" taken now.
func defaultSnapshot(id string) snapshotData {
	return snapshotData{
		id:        id,
		root:      "/",
		body:      "- /\n  (no subdirectories)\n",
		nodeCount: 1,
		createdAt: time.Now(),
	}
}

// SnapshotOption configures a snapshot during builder setup.
type SnapshotOption func(*snapshotData)

// WithRoot sets the root directory name.
func WithRoot(root string) SnapshotOption {
	return func(s *snapshotData) { s.root = root }
}

// WithLabel sets the snapshot label.
func WithLabel(label string) SnapshotOption {
	return func(s *snapshotData) { s.label = label }
}

// WithBody sets the report text and its node count.
func WithBody(body string, nodes int) SnapshotOption {
	return func(s *snapshotData) {
		s.body = body
		s.nodeCount = nodes
	}
}

// WithCreatedAt sets the creation time.
func WithCreatedAt(t time.Time) SnapshotOption {
	return func(s *snapshotData) { s.createdAt = t }
}
