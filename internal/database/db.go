// Package database handles the connection to the local SQLite file and all
// persistence operations of the flowdesk core: schema setup with additive
// migrations, the per-entity stores, the reminder eligibility query, and the
// generic settings store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultFileName is the database file created in the working directory when
// no explicit path is configured.
const DefaultFileName = "flowdesk.db"

// Config carries everything the connection provider needs. It is built once
// at startup and passed in explicitly; there is no package-level path.
type Config struct {
	// Path of the database file. Required.
	Path string

	// BusyTimeout is how long the engine retries when another writer holds
	// the lock. Zero means no retrying.
	BusyTimeout time.Duration
}

// DefaultConfig derives the database location from the process's current
// working directory.
func DefaultConfig() (Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return Config{
		Path:        filepath.Join(wd, DefaultFileName),
		BusyTimeout: 5 * time.Second,
	}, nil
}

// Open opens the database file and prepares the connection for use.
// All failures are reported as *ConnectionError.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, &ConnectionError{Path: cfg.Path, Err: fmt.Errorf("empty database path")}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, &ConnectionError{Path: cfg.Path, Err: err}
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		// WAL mode for better concurrency between the UI and the reminder process
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			slog.Error("failed to apply pragma", "pragma", pragma, "error", err)
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing db", "error", closeErr)
			}
			return nil, &ConnectionError{Path: cfg.Path, Err: err}
		}
	}

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, &ConnectionError{Path: cfg.Path, Err: err}
	}

	// SQLite benefits from a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

// Connect opens the database, brings the schema up to date, and returns a
// ready Repository together with the outcome of each migration step.
func Connect(ctx context.Context, cfg Config) (*Repository, []MigrationStep, error) {
	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	steps, err := EnsureSchema(ctx, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing db", "error", closeErr)
		}
		return nil, nil, err
	}

	return NewRepository(db), steps, nil
}
