package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
)

// MigrationOutcome classifies what happened to a single additive column
// migration. Swallowing "column already exists" is the normal idempotent
// path, so it is an explicit outcome rather than a discarded error.
type MigrationOutcome int

const (
	// MigrationApplied means the column was added by this run
	MigrationApplied MigrationOutcome = iota
	// MigrationAlreadyApplied means the column existed before this run
	MigrationAlreadyApplied
	// MigrationFailed means the ALTER TABLE failed for some other reason;
	// the step is recorded and schema setup continues
	MigrationFailed
)

func (o MigrationOutcome) String() string {
	switch o {
	case MigrationApplied:
		return "applied"
	case MigrationAlreadyApplied:
		return "already applied"
	case MigrationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MigrationStep is the result of one column-add migration.
type MigrationStep struct {
	Table   string
	Column  string
	Outcome MigrationOutcome
	Err     error // set only when Outcome is MigrationFailed
}

// createStatements are the baseline table definitions, as they existed when
// each table was first introduced. Columns added later live in
// additiveColumns so that databases created by older versions migrate
// forward without data loss.
var createStatements = []struct {
	table string
	stmt  string
}{
	{"workflows", `
		CREATE TABLE IF NOT EXISTS workflows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"tasks", `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			checked INTEGER NOT NULL DEFAULT 0,
			ord INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"files", `
		CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			mtime INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"cards", `
		CREATE TABLE IF NOT EXISTS cards (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			x INTEGER NOT NULL DEFAULT 0,
			y INTEGER NOT NULL DEFAULT 0,
			w INTEGER NOT NULL DEFAULT 0,
			h INTEGER NOT NULL DEFAULT 0,
			content TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"sheets", `
		CREATE TABLE IF NOT EXISTS sheets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			csv TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"clients", `
		CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"opportunities", `
		CREATE TABLE IF NOT EXISTS opportunities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id INTEGER NOT NULL DEFAULT 0,
			title TEXT NOT NULL,
			value REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT '',
			stage TEXT NOT NULL DEFAULT '',
			owner_id INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"interactions", `
		CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			opportunity_id INTEGER NOT NULL DEFAULT 0,
			kind TEXT NOT NULL DEFAULT '',
			note TEXT NOT NULL DEFAULT '',
			when_ts INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			salt TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT 0
		)
	`},
	{"settings", `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL DEFAULT ''
		)
	`},
}

// additiveColumns lists every column introduced after its table's original
// definition. Each entry is attempted on every startup; the defaults here
// are what legacy rows receive.
var additiveColumns = []struct {
	table      string
	column     string
	definition string
}{
	{"tasks", "workflow_id", "INTEGER NOT NULL DEFAULT 0"},
	{"tasks", "created_at", "INTEGER NOT NULL DEFAULT 0"},
	{"tasks", "last_reminder_sent", "INTEGER NOT NULL DEFAULT 0"},
	{"tasks", "reminder_window_minutes", "INTEGER NOT NULL DEFAULT 0"},
	{"workflows", "user_id", "INTEGER NOT NULL DEFAULT 0"},
	{"files", "workflow_id", "INTEGER NOT NULL DEFAULT 0"},
	{"opportunities", "workflow_id", "INTEGER NOT NULL DEFAULT 0"},
}

// EnsureSchema creates all tables and applies additive column migrations.
// It is idempotent and runs unconditionally on every startup.
//
// A table creation failure aborts with *SchemaInitError: the application
// cannot run without its tables. Column-add steps are failure-isolated;
// each outcome is reported in the returned slice and a failing step never
// prevents the remaining steps from running.
func EnsureSchema(ctx context.Context, db *sql.DB) ([]MigrationStep, error) {
	for _, c := range createStatements {
		if _, err := db.ExecContext(ctx, c.stmt); err != nil {
			return nil, &SchemaInitError{Table: c.table, Err: err}
		}
	}

	steps := make([]MigrationStep, 0, len(additiveColumns))
	for _, col := range additiveColumns {
		step := MigrationStep{Table: col.table, Column: col.column}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", col.table, col.column, col.definition)
		_, err := db.ExecContext(ctx, stmt)
		switch {
		case err == nil:
			step.Outcome = MigrationApplied
		case isDuplicateColumn(err):
			// the normal case on every startup after the first
			step.Outcome = MigrationAlreadyApplied
		default:
			step.Outcome = MigrationFailed
			step.Err = err
			slog.Warn("column migration failed",
				"table", col.table, "column", col.column, "error", err)
		}
		steps = append(steps, step)
	}

	return steps, nil
}

// isDuplicateColumn reports whether err is SQLite's complaint about adding a
// column that already exists.
func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
