package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository records and reads command journal entries.
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// Record inserts an entry, filling in ID and ExecutedAt when unset.
func (r *Repository) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = time.Now().UTC()
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO command_log (id, command, path, name, succeeded, error, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		entry.ID,
		entry.Command,
		entry.Path,
		entry.Name,
		entry.Succeeded,
		entry.Error,
		entry.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record command: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, command, path, name, succeeded, error, executed_at
		FROM command_log
		ORDER BY executed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query command log: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.Command,
			&entry.Path,
			&entry.Name,
			&entry.Succeeded,
			&entry.Error,
			&entry.ExecutedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan command log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetStats returns aggregate journal statistics.
func (r *Repository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := r.db.Pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT succeeded),
			COUNT(*) FILTER (WHERE command IN ('add-folder', 'add-file', 'remove-folder', 'remove-file'))
		FROM command_log
	`).Scan(
		&stats.TotalCommands,
		&stats.FailedCommands,
		&stats.Mutations,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}
