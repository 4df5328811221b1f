package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
)

// SnapshotBuilder accumulates snapshots and saves them in order.
type SnapshotBuilder struct {
	t     *testing.T
	repo  domain.SnapshotRepository
	snaps []snapshotData
}

// NewSnapshotBuilder creates a builder for repo.
func NewSnapshotBuilder(t *testing.T, repo domain.SnapshotRepository) *SnapshotBuilder {
	t.Helper()
	return &SnapshotBuilder{t: t, repo: repo}
}

// WithSnapshot adds a snapshot with optional configuration.
func (b *SnapshotBuilder) WithSnapshot(id string, opts ...SnapshotOption) *SnapshotBuilder {
	s := defaultSnapshot(id)
	for _, opt := range opts {
		opt(&s)
	}
	b.snaps = append(b.snaps, s)
	return b
}

// Build saves all accumulated snapshots.
func (b *SnapshotBuilder) Build() {
	b.t.Helper()
	for _, s := range b.snaps {
		snap := domain.ReconstituteSnapshot(s.id, s.root, s.label, s.body, s.nodeCount, s.createdAt)
		require.NoError(b.t, b.repo.Save(snap), "saving snapshot %s", s.id)
	}
}

// TreeBuilder grows a forest from a root for tests. Directories are added
// under the most recently added directory named in Under, or the root.
type TreeBuilder struct {
	t      *testing.T
	forest *dirtree.Forest
	root   *dirtree.Node
}

// NewTree creates a forest holding a single root named name.
func NewTree(t *testing.T, name string) *TreeBuilder {
	t.Helper()
	f := dirtree.NewForest()
	root, err := f.Create(name, dirtree.RootLevel)
	require.NoError(t, err)
	return &TreeBuilder{t: t, forest: f, root: root}
}

// Dir adds each name as a child of the root.
func (b *TreeBuilder) Dir(names ...string) *TreeBuilder {
	b.t.Helper()
	return b.Under(b.root.Name(), names...)
}

// Under adds each name as a child of the registered directory parent.
func (b *TreeBuilder) Under(parent string, names ...string) *TreeBuilder {
	b.t.Helper()
	p, ok := b.forest.Lookup(parent)
	require.True(b.t, ok, "parent %q is not registered", parent)
	for _, name := range names {
		_, err := b.forest.CreateChild(p.ID(), name)
		require.NoError(b.t, err)
	}
	return b
}

// Build returns the forest and its root.
func (b *TreeBuilder) Build() (*dirtree.Forest, *dirtree.Node) {
	return b.forest, b.root
}
