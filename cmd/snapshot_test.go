package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/webwalker/internal/config"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
	"github.com/zjrosen/webwalker/internal/testutil"
)

// seedSnapshots points the config at a fresh snapshot database holding
// two snapshots of "/" and one of "/api".
func seedSnapshots(t *testing.T) (string, domain.SnapshotRepository) {
	t.Helper()
	dir := t.TempDir()
	c := config.Defaults()
	c.DataDir = dir
	useConfig(t, c)

	repo := testutil.NewSnapshotDBAt(t, c.SnapshotPath()).SnapshotRepository()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	testutil.NewSnapshotBuilder(t, repo).
		WithSnapshot("aaaa1111-first", testutil.WithCreatedAt(base)).
		WithSnapshot("bbbb2222-second", testutil.WithLabel("after login"),
			testutil.WithBody(testutil.AppTreeReport, 5), testutil.WithCreatedAt(base.Add(time.Hour))).
		WithSnapshot("cccc3333-api", testutil.WithRoot("/api"), testutil.WithCreatedAt(base.Add(2*time.Hour))).
		Build()
	return dir, repo
}

func runSub(t *testing.T, c *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	t.Cleanup(func() { c.SetOut(nil) })
	require.NoError(t, c.RunE(c, args))
	return out.String()
}

func TestSnapshotList_FilterByRoot(t *testing.T) {
	seedSnapshots(t)
	snapshotRoot = "/"
	t.Cleanup(func() { snapshotRoot = "" })

	out := runSub(t, snapshotListCmd)
	require.Equal(t,
		"bbbb2222  2024-05-01 10:00:00      5  /  (after login)\n"+
			"aaaa1111  2024-05-01 09:00:00      1  /\n",
		out)
}

func TestSnapshotShow_ByPrefix(t *testing.T) {
	seedSnapshots(t)

	out := runSub(t, snapshotShowCmd, "bbbb")
	require.Equal(t, testutil.AppTreeReport, out)
}

func TestSnapshotShow_NotFound(t *testing.T) {
	seedSnapshots(t)

	err := snapshotShowCmd.RunE(snapshotShowCmd, []string{"zzzz"})
	var notFound *domain.SnapshotNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSnapshotRestore_WritesLoadableTree(t *testing.T) {
	dir, _ := seedSnapshots(t)
	restoreOutput = "restored.txt"
	t.Cleanup(func() { restoreOutput = "" })

	out := runSub(t, snapshotRestoreCmd, "bbbb2222")
	require.Contains(t, out, "Restored snapshot bbbb2222 to ")

	data, err := os.ReadFile(filepath.Join(dir, "restored.txt"))
	require.NoError(t, err)
	require.Equal(t, testutil.AppTreeReport, string(data))

	got, err := canonicalTree(filepath.Join(dir, "restored.txt"))
	require.NoError(t, err)
	require.Equal(t, testutil.AppTreeReport, got)
}

func TestSnapshotDelete(t *testing.T) {
	_, repo := seedSnapshots(t)

	out := runSub(t, snapshotDeleteCmd, "cccc")
	require.Equal(t, "Deleted snapshot cccc3333\n", out)

	_, err := repo.FindByID("cccc3333-api")
	var notFound *domain.SnapshotNotFoundError
	require.ErrorAs(t, err, &notFound)
}
