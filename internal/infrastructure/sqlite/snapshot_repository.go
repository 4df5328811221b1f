package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/webwalker/internal/log"
	"github.com/zjrosen/webwalker/internal/snapshots/domain"
)

const snapshotColumns = `id, root, label, body, node_count, created_at`

// snapshotRepository implements domain.SnapshotRepository using SQLite.
type snapshotRepository struct {
	db *sql.DB
}

func newSnapshotRepository(db *sql.DB) *snapshotRepository {
	return &snapshotRepository{db: db}
}

var _ domain.SnapshotRepository = (*snapshotRepository)(nil)

func scanSnapshot(scanner interface{ Scan(...any) error }) (*SnapshotModel, error) {
	var m SnapshotModel
	err := scanner.Scan(&m.ID, &m.Root, &m.Label, &m.Body, &m.NodeCount, &m.CreatedAt)
	return &m, err
}

// Save inserts a snapshot. Saving the same ID twice is an error.
func (r *snapshotRepository) Save(snapshot *domain.Snapshot) error {
	m := toSnapshotModel(snapshot)
	_, err := r.db.Exec(
		`INSERT INTO snapshots (`+snapshotColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.Root, m.Label, m.Body, m.NodeCount, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	log.Debug(log.CatStore, "saved snapshot", "id", m.ID, "root", m.Root, "nodes", m.NodeCount)
	return nil
}

// FindByID accepts a full ID or a unique prefix.
func (r *snapshotRepository) FindByID(id string) (*domain.Snapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &domain.SnapshotNotFoundError{ID: id}
	}

	rows, err := r.db.Query(
		`SELECT `+snapshotColumns+` FROM snapshots WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		id, len(id), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}
	models, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to find snapshot: %w", err)
	}

	switch {
	case len(models) == 0:
		return nil, &domain.SnapshotNotFoundError{ID: id}
	case len(models) > 1:
		for _, m := range models {
			if m.ID == id {
				return m.toDomain(), nil
			}
		}
		var count int
		if err := r.db.QueryRow(`SELECT COUNT(*) FROM snapshots WHERE substr(id, 1, ?) = ?`, len(id), id).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count snapshots: %w", err)
		}
		return nil, &domain.AmbiguousIDError{Prefix: id, Matches: count}
	default:
		return models[0].toDomain(), nil
	}
}

// Latest returns the newest snapshot of root.
func (r *snapshotRepository) Latest(root string) (*domain.Snapshot, error) {
	row := r.db.QueryRow(
		`SELECT `+snapshotColumns+` FROM snapshots WHERE root = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		root,
	)
	m, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.SnapshotNotFoundError{ID: "latest:" + root}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest snapshot: %w", err)
	}
	return m.toDomain(), nil
}

// List returns snapshots newest first.
func (r *snapshotRepository) List(filter domain.ListFilter) ([]*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots`
	var args []any
	if filter.Root != "" {
		query += ` WHERE root = ?`
		args = append(args, filter.Root)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	models, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	snapshots := make([]*domain.Snapshot, 0, len(models))
	for _, m := range models {
		snapshots = append(snapshots, m.toDomain())
	}
	return snapshots, nil
}

// Delete removes a snapshot by full ID.
func (r *snapshotRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &domain.SnapshotNotFoundError{ID: id}
	}
	return nil
}

func collect(rows *sql.Rows) ([]*SnapshotModel, error) {
	defer func() { _ = rows.Close() }()

	var models []*SnapshotModel
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, rows.Err()
}
