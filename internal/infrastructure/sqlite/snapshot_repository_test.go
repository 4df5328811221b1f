package sqlite

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/webwalker/internal/snapshots/domain"
)

// setupTestRepo creates a new DB and returns the repository for testing.
// The DB is closed when the test completes.
func setupTestRepo(t *testing.T) domain.SnapshotRepository {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db.SnapshotRepository()
}

func snapshotAt(t *testing.T, id, root string, created time.Time) *domain.Snapshot {
	t.Helper()
	return domain.ReconstituteSnapshot(id, root, "", "- "+root+"\n", 1, created)
}

func TestSnapshotRepository_SaveAndFind(t *testing.T) {
	repo := setupTestRepo(t)

	snap, err := domain.NewSnapshot("/", "after login", "- /\n  - /a\n", 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(snap))

	found, err := repo.FindByID(snap.ID())
	require.NoError(t, err)
	require.Equal(t, snap.ID(), found.ID())
	require.Equal(t, "/", found.Root())
	require.Equal(t, "after login", found.Label())
	require.Equal(t, "- /\n  - /a\n", found.Body())
	require.Equal(t, 2, found.NodeCount())
	require.WithinDuration(t, snap.CreatedAt(), found.CreatedAt(), time.Millisecond)
}

func TestSnapshotRepository_SaveDuplicateID(t *testing.T) {
	repo := setupTestRepo(t)
	snap := snapshotAt(t, "dup", "/", time.Now())

	require.NoError(t, repo.Save(snap))
	require.Error(t, repo.Save(snap), "snapshots are immutable")
}

func TestSnapshotRepository_FindByPrefix(t *testing.T) {
	repo := setupTestRepo(t)
	now := time.Now()
	require.NoError(t, repo.Save(snapshotAt(t, "aaaa1111", "/", now)))
	require.NoError(t, repo.Save(snapshotAt(t, "aaaa2222", "/", now)))
	require.NoError(t, repo.Save(snapshotAt(t, "bbbb3333", "/", now)))

	found, err := repo.FindByID("bbbb")
	require.NoError(t, err)
	require.Equal(t, "bbbb3333", found.ID())

	_, err = repo.FindByID("aaaa")
	var ambiguous *domain.AmbiguousIDError
	require.ErrorAs(t, err, &ambiguous)
	require.Equal(t, 2, ambiguous.Matches)

	found, err = repo.FindByID("aaaa2222")
	require.NoError(t, err, "full ID is never ambiguous")
	require.Equal(t, "aaaa2222", found.ID())
}

func TestSnapshotRepository_FindByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID("missing")
	var notFound *domain.SnapshotNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "missing", notFound.ID)

	_, err = repo.FindByID("  ")
	require.ErrorAs(t, err, &notFound)
}

func TestSnapshotRepository_LatestAndList(t *testing.T) {
	repo := setupTestRepo(t)
	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Save(snapshotAt(t, "s1", "/", base)))
	require.NoError(t, repo.Save(snapshotAt(t, "s2", "/", base.Add(time.Minute))))
	require.NoError(t, repo.Save(snapshotAt(t, "s3", "/app", base.Add(2*time.Minute))))

	latest, err := repo.Latest("/")
	require.NoError(t, err)
	require.Equal(t, "s2", latest.ID())

	_, err = repo.Latest("/none")
	var notFound *domain.SnapshotNotFoundError
	require.ErrorAs(t, err, &notFound)

	all, err := repo.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"s3", "s2", "s1"}, ids(all), "newest first")

	rooted, err := repo.List(domain.ListFilter{Root: "/", Limit: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"s2"}, ids(rooted))
}

func TestSnapshotRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)
	require.NoError(t, repo.Save(snapshotAt(t, "gone", "/", time.Now())))

	require.NoError(t, repo.Delete("gone"))
	_, err := repo.FindByID("gone")
	var notFound *domain.SnapshotNotFoundError
	require.ErrorAs(t, err, &notFound)

	err = repo.Delete("gone")
	require.ErrorAs(t, err, &notFound, "deleting twice reports not found")
}

// TestSnapshotRepository_RootIsolation is a property-based test using rapid.
func TestSnapshotRepository_RootIsolation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		db, err := NewDB(filepath.Join(t.TempDir(), fmt.Sprintf("prop-%d.db", time.Now().UnixNano())))
		require.NoError(rt, err)
		defer db.Close()
		repo := db.SnapshotRepository()

		roots := rapid.SliceOfNDistinct(rapid.StringMatching(`/[a-z]{1,6}`), 2, 4, rapid.ID[string]).Draw(rt, "roots")
		want := make(map[string]int)
		n := rapid.IntRange(1, 12).Draw(rt, "snapshots")
		for i := 0; i < n; i++ {
			root := rapid.SampledFrom(roots).Draw(rt, "root")
			snap, err := domain.NewSnapshot(root, "", "- "+root+"\n", 1)
			require.NoError(rt, err)
			require.NoError(rt, repo.Save(snap))
			want[root]++
		}

		for _, root := range roots {
			got, err := repo.List(domain.ListFilter{Root: root})
			require.NoError(rt, err)
			require.Len(rt, got, want[root], "root %s", root)
			for _, s := range got {
				require.Equal(rt, root, s.Root())
			}
		}
	})
}

func ids(snaps []*domain.Snapshot) []string {
	out := make([]string, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.ID())
	}
	return out
}
