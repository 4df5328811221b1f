// Package testutil provides fixtures for directory trees and the snapshot
// database.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/webwalker/internal/infrastructure/sqlite"
)

// NewSnapshotDB opens a snapshot database in a temporary directory. It is
// closed when the test completes.
func NewSnapshotDB(t *testing.T) *sqlite.DB {
	t.Helper()
	return NewSnapshotDBAt(t, filepath.Join(t.TempDir(), "snapshots.db"))
}

// NewSnapshotDBAt opens a snapshot database at path, creating it if needed.
func NewSnapshotDBAt(t *testing.T, path string) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(path)
	require.NoError(t, err, "failed to open snapshot database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}
