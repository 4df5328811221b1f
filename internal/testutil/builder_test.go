package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
)

func TestAppTree_RendersReport(t *testing.T) {
	f, root := AppTree(t)

	got, err := f.Render(root.ID())
	require.NoError(t, err)
	require.Equal(t, AppTreeReport, got)
	require.Equal(t, 5, f.Len())
}

func TestAdminPageLinks_Populate(t *testing.T) {
	f, _ := NewTree(t, "/").Dir("/admin").Build()
	admin, ok := f.Lookup("/admin")
	require.True(t, ok)

	res, err := dirtree.NewPopulator("example.com").Populate(f, admin.ID(), AdminPageLinks)
	require.NoError(t, err)
	require.Equal(t, []string{"/admin/settings", "/admin/users"}, res.Added)
	require.Equal(t, 2, res.Skipped, "fragment and self link")
}

func TestSnapshotBuilder(t *testing.T) {
	repo := NewSnapshotDB(t).SnapshotRepository()
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	NewSnapshotBuilder(t, repo).
		WithSnapshot("older", WithCreatedAt(old)).
		WithSnapshot("newer", WithLabel("after login"), WithBody(AppTreeReport, 5), WithCreatedAt(old.Add(time.Hour))).
		WithSnapshot("other", WithRoot("/api"), WithCreatedAt(old.Add(2*time.Hour))).
		Build()

	snaps, err := repo.List(domain.ListFilter{Root: "/"})
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, "newer", snaps[0].ID())
	require.Equal(t, "after login", snaps[0].Label())
	require.Equal(t, AppTreeReport, snaps[0].Body())
	require.Equal(t, 5, snaps[0].NodeCount())
	require.Equal(t, "older", snaps[1].ID())
}
