package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDataFile(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "input.txt")

	tests := []struct {
		name    string
		dataDir string
		file    string
		want    string
	}{
		{"joins data dir", "data", "input.txt", filepath.Join("data", "input.txt")},
		{"nested name", "data", "scans/a.txt", filepath.Join("data", "scans", "a.txt")},
		{"absolute kept", "data", abs, abs},
		{"dot slash bypasses data dir", "data", "./input.txt", "input.txt"},
		{"parent relative bypasses data dir", "data", "../input.txt", filepath.Join("..", "input.txt")},
		{"empty data dir", "", "input.txt", "input.txt"},
		{"blank name", "data", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveDataFile(tt.dataDir, tt.file))
		})
	}
}

func TestResolveDataFile_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, "scans", "in.txt"), ResolveDataFile("data", "~/scans/in.txt"))
}

func TestUserConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "webwalker"), UserConfigDir())
}

func TestDebugLogPath(t *testing.T) {
	t.Setenv("WEBWALKER_DEBUG", "1")
	require.Equal(t, "debug.log", DebugLogPath())

	t.Setenv("WEBWALKER_DEBUG", "/tmp/ww.log")
	require.Equal(t, "/tmp/ww.log", DebugLogPath())
}
