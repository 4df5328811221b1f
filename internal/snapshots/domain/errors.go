package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRoot is returned when a snapshot has no root name.
	ErrEmptyRoot = errors.New("snapshot root is empty")
	// ErrEmptyBody is returned when a snapshot has no report text.
	ErrEmptyBody = errors.New("snapshot body is empty")
)

// SnapshotNotFoundError is returned when no snapshot matches an ID or prefix.
type SnapshotNotFoundError struct {
	ID string
}

func (e *SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("snapshot %q not found", e.ID)
}

// AmbiguousIDError is returned when an ID prefix matches several snapshots.
type AmbiguousIDError struct {
	Prefix  string
	Matches int
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("snapshot id %q is ambiguous (%d matches)", e.Prefix, e.Matches)
}
