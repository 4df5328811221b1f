package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/webwalker/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	inputPath := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("/a\n"), 0o644))

	onChange := startWatcher(t, inputPath)

	// Rapid writes should coalesce into single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(inputPath, []byte(fmt.Sprintf("/a%d\n", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.txt")
	otherPath := filepath.Join(dir, "outputfile.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("/a\n"), 0o644))
	require.NoError(t, os.WriteFile(otherPath, []byte("- /\n"), 0o644))

	onChange := startWatcher(t, inputPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("- /\n  - /a\n"), 0o644))

	select {
	case <-onChange:
		t.Fatal("should not notify for other files in the data directory")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_FileCreatedLater(t *testing.T) {
	inputPath := filepath.Join(t.TempDir(), "input.txt")

	onChange := startWatcher(t, inputPath)

	require.NoError(t, os.WriteFile(inputPath, []byte("/late\n"), 0o644))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("creating the watched file should notify")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "nope", "input.txt")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("data/input.txt")
	assert.Equal(t, "data/input.txt", cfg.Path)
	assert.Equal(t, time.Second, cfg.DebounceDur)
}
