package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations is the journal schema history, oldest first. Versions are never reused.
var migrations = []struct {
	Version string
	SQL     string
}{
	{
		Version: "000001_create_command_log",
		SQL: `
			CREATE TABLE IF NOT EXISTS command_log (
				id          VARCHAR(36)  PRIMARY KEY,
				command     VARCHAR(32)  NOT NULL,
				path        TEXT         NOT NULL DEFAULT '',
				name        TEXT         NOT NULL DEFAULT '',
				succeeded   BOOLEAN      NOT NULL,
				error       TEXT,
				executed_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_command_log_executed_at ON command_log(executed_at);
		`,
	},
}

// DB is the connection pool behind the command journal.
type DB struct {
	Pool *pgxpool.Pool
}

// New connects to the journal database and fails unless it answers a ping.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("connected to journal database")
	return &DB{Pool: pool}, nil
}

// RunMigrations brings the journal schema up to date. Each migration runs in
// its own transaction together with its schema_migrations row.
func (db *DB) RunMigrations(ctx context.Context) error {
	// Versions already applied to this journal database
	_, err := db.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		err := db.Pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)",
			m.Version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status for %s: %w", m.Version, err)
		}
		if exists {
			continue
		}

		tx, err := db.Pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %s: %w", m.Version, err)
		}

		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to execute migration %s: %w", m.Version, err)
		}

		if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", m.Version); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %s: %w", m.Version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.Version, err)
		}

		slog.Info("applied journal migration", "version", m.Version)
	}

	return nil
}

// HealthCheck pings the journal database.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases the journal's connections.
func (db *DB) Close() {
	db.Pool.Close()
}
