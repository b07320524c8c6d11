package database

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the full schema applied.
// This is the unified test database setup used by all tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if _, err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return db
}

// setupTestDBFile creates a file-based database for testing persistence
// across restarts. The file is removed when the test finishes.
func setupTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "flowdesk-test-*.db")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tmpfile.Close()

	db, err := sql.Open("sqlite", tmpfile.Name())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if _, err := EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return db, tmpfile.Name()
}

// closeAndReopenDB simulates app restart by closing and reopening the database
func closeAndReopenDB(t *testing.T, db *sql.DB, dbPath string) *sql.DB {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	newDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}

	if _, err := newDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	return newDB
}

// ============================================================================
// ROW MANIPULATION HELPERS
// ============================================================================

// backdateTask rewrites a task's created_at so age-dependent queries can be
// exercised without sleeping.
func backdateTask(t *testing.T, db *sql.DB, taskID int, createdAt int64) {
	t.Helper()
	if _, err := db.Exec(`UPDATE tasks SET created_at = ? WHERE id = ?`, createdAt, taskID); err != nil {
		t.Fatalf("Failed to backdate task %d: %v", taskID, err)
	}
}

// setCardUpdatedAt pins a card's updated_at to a known value so ordering
// can be asserted deterministically.
func setCardUpdatedAt(t *testing.T, db *sql.DB, cardID int, updatedAt int64) {
	t.Helper()
	if _, err := db.Exec(`UPDATE cards SET updated_at = ? WHERE id = ?`, updatedAt, cardID); err != nil {
		t.Fatalf("Failed to set card %d updated_at: %v", cardID, err)
	}
}

// setOpportunityUpdatedAt pins an opportunity's updated_at to a known value.
func setOpportunityUpdatedAt(t *testing.T, db *sql.DB, oppID int, updatedAt int64) {
	t.Helper()
	if _, err := db.Exec(`UPDATE opportunities SET updated_at = ? WHERE id = ?`, updatedAt, oppID); err != nil {
		t.Fatalf("Failed to set opportunity %d updated_at: %v", oppID, err)
	}
}

// setFileAddedAt pins a file's added_at to a known value.
func setFileAddedAt(t *testing.T, db *sql.DB, fileID int, addedAt int64) {
	t.Helper()
	if _, err := db.Exec(`UPDATE files SET added_at = ? WHERE id = ?`, addedAt, fileID); err != nil {
		t.Fatalf("Failed to set file %d added_at: %v", fileID, err)
	}
}

// countRows returns the number of rows in a table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}
