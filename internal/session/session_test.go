package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
	"github.com/zjrosen/webwalker/internal/testutil"
	"github.com/zjrosen/webwalker/internal/tracing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestOpen_EmptyRoot(t *testing.T) {
	s, err := Open(context.Background(), Options{DataDir: t.TempDir()})
	require.NoError(t, err)

	require.Equal(t, "/", s.Root().Name(), "root name defaults to /")
	require.Equal(t, 1, s.Forest().Len())
	require.Empty(t, s.Warnings())
	require.Empty(t, s.InputPath())
}

func TestOpen_InputFilePopulatesRoot(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "input.txt", `["https://example.com/login", "/admin", "/admin", "https://example.com/#top"]`)

	s, err := Open(context.Background(), Options{
		RootName:  "/",
		InputFile: "input.txt",
		DataDir:   dataDir,
		Hostname:  "example.com",
	})
	require.NoError(t, err)

	require.Equal(t, []string{"/admin", "/login"}, s.Root().ChildNames())
	require.Equal(t, filepath.Join(dataDir, "input.txt"), s.InputPath())
}

func TestOpen_MissingInputFileWarns(t *testing.T) {
	s, err := Open(context.Background(), Options{InputFile: "nope.txt", DataDir: t.TempDir()})
	require.NoError(t, err, "a missing input file is not fatal")

	require.False(t, s.Root().HasChildren())
	require.Len(t, s.Warnings(), 1)
	require.Contains(t, s.Warnings()[0], "not found")
}

func TestOpen_InputTree(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "tree.txt", "- /app\n  - /app/a\n    - /app/a/x\n  - /app/b\n")

	s, err := Open(context.Background(), Options{InputTree: "tree.txt", DataDir: dataDir})
	require.NoError(t, err)

	require.Equal(t, "/app", s.Root().Name(), "root comes from the tree, not RootName")
	require.Equal(t, 4, s.Forest().Len())
	out, err := s.Render()
	require.NoError(t, err)
	require.Equal(t, "- /app\n  - /app/a\n    - /app/a/x\n  - /app/b\n", out)
}

func TestOpen_BadInputTreeResets(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "tree.txt", "- /\n  - /a\n    - /a\n")

	s, err := Open(context.Background(), Options{InputTree: "tree.txt", DataDir: dataDir, RootName: "/"})
	require.NoError(t, err)

	require.Equal(t, 1, s.Forest().Len(), "partial parse is discarded")
	require.Equal(t, "/", s.Root().Name())
	require.Len(t, s.Warnings(), 1)
	require.Contains(t, s.Warnings()[0], "starting with an empty tree")
}

func TestOpen_ConflictingInputs(t *testing.T) {
	_, err := Open(context.Background(), Options{InputFile: "a", InputTree: "b"})
	require.ErrorIs(t, err, ErrConflictingInputs)
}

func TestPopulateFrom(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "admin.txt", "/admin/users\n/admin/roles\n/admin\n")

	s, err := Open(context.Background(), Options{DataDir: dataDir})
	require.NoError(t, err)
	admin, err := s.Forest().CreateChild(s.Root().ID(), "/admin")
	require.NoError(t, err)

	res, err := s.PopulateFrom(context.Background(), admin.ID(), "admin.txt")
	require.NoError(t, err)
	require.Equal(t, []string{"/admin/roles", "/admin/users"}, res.Added)
	require.Equal(t, 1, res.Skipped, "self reference skipped")

	_, err = s.PopulateFrom(context.Background(), admin.ID(), "missing.txt")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = s.PopulateFrom(context.Background(), admin.ID(), "")
	require.Error(t, err)
}

func TestReload_AddsOnlyNewEntries(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "input.txt", "/a\n")

	s, err := Open(context.Background(), Options{InputFile: "input.txt", DataDir: dataDir})
	require.NoError(t, err)

	writeFile(t, dataDir, "input.txt", "/a\n/b\n")
	res, err := s.Reload(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"/b"}, res.Added)
	require.Equal(t, []string{"/a", "/b"}, s.Root().ChildNames())
}

func TestReload_WithoutInputFile(t *testing.T) {
	s, err := Open(context.Background(), Options{DataDir: t.TempDir()})
	require.NoError(t, err)

	_, err = s.Reload(context.Background())
	require.ErrorIs(t, err, ErrNoInputFile)
}

func TestSave_DefaultFileAndRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "input.txt", "/a\n/b\n")

	s, err := Open(context.Background(), Options{InputFile: "input.txt", DataDir: dataDir, OutputFile: "out/tree.txt"})
	require.NoError(t, err)

	res, err := s.Save(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataDir, "out", "tree.txt"), res.Path)
	require.Empty(t, res.SnapshotID, "no repository configured")

	reopened, err := Open(context.Background(), Options{InputTree: "out/tree.txt", DataDir: dataDir})
	require.NoError(t, err)
	require.Equal(t, []string{"/a", "/b"}, reopened.Root().ChildNames())
}

func TestSave_RecordsSnapshot(t *testing.T) {
	dataDir := t.TempDir()
	repo := testutil.NewSnapshotDB(t).SnapshotRepository()

	s, err := Open(context.Background(), Options{DataDir: dataDir, Snapshots: repo})
	require.NoError(t, err)
	_, err = s.Forest().CreateChild(s.Root().ID(), "/a")
	require.NoError(t, err)

	res, err := s.Save(context.Background(), "tree.txt", "first pass")
	require.NoError(t, err)
	require.NotEmpty(t, res.SnapshotID)

	snap, err := repo.FindByID(res.SnapshotID)
	require.NoError(t, err)
	require.Equal(t, "first pass", snap.Label())
	require.Equal(t, "- /\n  - /a\n", snap.Body())
	require.Equal(t, 2, snap.NodeCount())

	latest, err := repo.Latest("/")
	require.NoError(t, err)
	require.Equal(t, res.SnapshotID, latest.ID())
}

type failingRepo struct{ domain.SnapshotRepository }

func (failingRepo) Save(*domain.Snapshot) error { return errors.New("disk full") }

func TestSave_SnapshotFailureKeepsFile(t *testing.T) {
	dataDir := t.TempDir()
	s, err := Open(context.Background(), Options{DataDir: dataDir, Snapshots: failingRepo{}})
	require.NoError(t, err)

	res, err := s.Save(context.Background(), "tree.txt", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "snapshot failed")

	data, readErr := os.ReadFile(res.Path)
	require.NoError(t, readErr, "report is written before the snapshot")
	require.Equal(t, "- /\n  "+dirtree.NoSubdirectoriesMarker+"\n", string(data))
}

func TestSession_Spans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("test")

	dataDir := t.TempDir()
	writeFile(t, dataDir, "input.txt", "/a\n")
	s, err := Open(context.Background(), Options{InputFile: "input.txt", DataDir: dataDir, Tracer: tracer})
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "", "")
	require.NoError(t, err)

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	require.Contains(t, names, tracing.SpanSessionOpen)
	require.Contains(t, names, tracing.SpanLoadList)
	require.Contains(t, names, tracing.SpanSave)
}
