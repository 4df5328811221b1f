package domain

// ListFilter narrows List results.
type ListFilter struct {
	// Root limits results to snapshots of one root. Empty means all roots.
	Root string

	// Limit caps the number of snapshots returned. 0 means no limit.
	Limit int
}

// SnapshotRepository defines the persistence interface for Snapshot entities.
type SnapshotRepository interface {
	// Save stores a new snapshot. Snapshots are immutable once saved.
	Save(snapshot *Snapshot) error

	// FindByID retrieves a snapshot by its full ID or a unique prefix of it.
	// Returns *SnapshotNotFoundError or *AmbiguousIDError.
	FindByID(id string) (*Snapshot, error)

	// Latest returns the newest snapshot of root.
	// Returns *SnapshotNotFoundError if root has none.
	Latest(root string) (*Snapshot, error)

	// List returns snapshots newest first.
	List(filter ListFilter) ([]*Snapshot, error)

	// Delete removes a snapshot by full ID.
	// Returns *SnapshotNotFoundError if it does not exist.
	Delete(id string) error
}
