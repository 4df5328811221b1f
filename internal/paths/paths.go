// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// LocalConfigFile is checked first, relative to the working directory.
	LocalConfigFile = ".webwalker/config.yaml"
	appDir          = "webwalker"
)

// ResolveDataFile resolves a user supplied file name against the data
// directory. Absolute paths and paths that explicitly start at the working
// directory ("./x", "../x") are used as given.
//
//   - ("data", "input.txt") -> "data/input.txt"
//   - ("data", "./input.txt") -> "input.txt"
//   - ("data", "/tmp/input.txt") -> "/tmp/input.txt"
//   - ("", "input.txt") -> "input.txt"
//   - ("data", "~/scans/in.txt") -> "$HOME/scans/in.txt"
func ResolveDataFile(dataDir, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if expanded, ok := expandHome(name); ok {
		return expanded
	}
	if filepath.IsAbs(name) || dataDir == "" || isExplicitlyRelative(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dataDir, name)
}

// UserConfigDir returns ~/.config/webwalker, or "" when the home directory
// is unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// DebugLogPath returns the file debug logging writes to: $WEBWALKER_DEBUG
// when it names a file, otherwise debug.log in the working directory.
func DebugLogPath() string {
	if v := os.Getenv("WEBWALKER_DEBUG"); v != "" && v != "1" && v != "true" {
		return v
	}
	return "debug.log"
}

func isExplicitlyRelative(name string) bool {
	return name == "." || name == ".." ||
		strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") ||
		strings.HasPrefix(name, "."+string(filepath.Separator)) ||
		strings.HasPrefix(name, ".."+string(filepath.Separator))
}

func expandHome(name string) (string, bool) {
	if name != "~" && !strings.HasPrefix(name, "~/") {
		return "", false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, strings.TrimPrefix(name, "~")), true
}
