package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

// tableColumns returns the column names of a table in definition order.
func tableColumns(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		t.Fatalf("Failed to read table info for %s: %v", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("Failed to scan column name: %v", err)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate columns: %v", err)
	}
	return cols
}

func hasColumn(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}

// TestEnsureSchemaIdempotent verifies that running schema setup repeatedly
// produces the same table and column set as running it once.
func TestEnsureSchemaIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := EnsureSchema(ctx, db); err != nil {
		t.Fatalf("First EnsureSchema failed: %v", err)
	}

	firstTasks := tableColumns(t, db, "tasks")
	firstWorkflows := tableColumns(t, db, "workflows")

	for i := 0; i < 3; i++ {
		steps, err := EnsureSchema(ctx, db)
		if err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+2, err)
		}
		// Every additive step must now report already-applied
		for _, step := range steps {
			if step.Outcome != MigrationAlreadyApplied {
				t.Errorf("Run %d: %s.%s outcome = %v, want already applied",
					i+2, step.Table, step.Column, step.Outcome)
			}
		}
	}

	if got := tableColumns(t, db, "tasks"); len(got) != len(firstTasks) {
		t.Errorf("tasks columns changed across runs: %v vs %v", firstTasks, got)
	}
	if got := tableColumns(t, db, "workflows"); len(got) != len(firstWorkflows) {
		t.Errorf("workflows columns changed across runs: %v vs %v", firstWorkflows, got)
	}
}

// TestEnsureSchemaFreshOutcomes verifies that on a brand new database every
// additive column reports applied (the table was just created without it).
func TestEnsureSchemaFreshOutcomes(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	steps, err := EnsureSchema(context.Background(), db)
	if err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if len(steps) != len(additiveColumns) {
		t.Fatalf("Expected %d steps, got %d", len(additiveColumns), len(steps))
	}
	for _, step := range steps {
		if step.Outcome != MigrationApplied {
			t.Errorf("%s.%s outcome = %v, want applied", step.Table, step.Column, step.Outcome)
		}
		if step.Err != nil {
			t.Errorf("%s.%s carries error %v on success", step.Table, step.Column, step.Err)
		}
	}
}

// TestMigrateLegacyDatabase simulates a database created before the reminder
// and scoping columns existed and verifies the migration adds every new
// column with its default without touching existing rows.
func TestMigrateLegacyDatabase(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Original-era tables: no workflow_id, created_at, or reminder fields
	// on tasks, no user_id on workflows, no workflow_id on files.
	legacy := []string{
		`CREATE TABLE workflows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			checked INTEGER NOT NULL DEFAULT 0,
			ord INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			mtime INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range legacy {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create legacy table: %v", err)
		}
	}

	// Pre-existing data that must survive the migration untouched.
	if _, err := db.Exec(`INSERT INTO tasks (text, checked, ord) VALUES ('old task', 1, 7)`); err != nil {
		t.Fatalf("Failed to insert legacy task: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO workflows (name, created_at, updated_at) VALUES ('old wf', 100, 200)`); err != nil {
		t.Fatalf("Failed to insert legacy workflow: %v", err)
	}

	steps, err := EnsureSchema(context.Background(), db)
	if err != nil {
		t.Fatalf("EnsureSchema on legacy database failed: %v", err)
	}
	for _, step := range steps {
		if step.Outcome == MigrationFailed {
			t.Errorf("%s.%s failed: %v", step.Table, step.Column, step.Err)
		}
	}

	taskCols := tableColumns(t, db, "tasks")
	for _, want := range []string{"workflow_id", "created_at", "last_reminder_sent", "reminder_window_minutes"} {
		if !hasColumn(taskCols, want) {
			t.Errorf("tasks is missing migrated column %q (have %v)", want, taskCols)
		}
	}
	if !hasColumn(tableColumns(t, db, "workflows"), "user_id") {
		t.Error("workflows is missing migrated column user_id")
	}
	if !hasColumn(tableColumns(t, db, "files"), "workflow_id") {
		t.Error("files is missing migrated column workflow_id")
	}

	// The legacy row keeps its data and gets the documented defaults.
	var text string
	var checked, ord, workflowID, rwm int
	var createdAt, lastSent int64
	err = db.QueryRow(
		`SELECT text, checked, ord, workflow_id, created_at, last_reminder_sent, reminder_window_minutes FROM tasks`,
	).Scan(&text, &checked, &ord, &workflowID, &createdAt, &lastSent, &rwm)
	if err != nil {
		t.Fatalf("Failed to read migrated task: %v", err)
	}
	if text != "old task" || checked != 1 || ord != 7 {
		t.Errorf("Legacy task data altered: text=%q checked=%d ord=%d", text, checked, ord)
	}
	if workflowID != 0 || createdAt != 0 || lastSent != 0 || rwm != 0 {
		t.Errorf("Migrated columns should default to 0, got workflow_id=%d created_at=%d last_reminder_sent=%d reminder_window_minutes=%d",
			workflowID, createdAt, lastSent, rwm)
	}

	var userID int
	if err := db.QueryRow(`SELECT user_id FROM workflows`).Scan(&userID); err != nil {
		t.Fatalf("Failed to read migrated workflow: %v", err)
	}
	if userID != 0 {
		t.Errorf("workflows.user_id default = %d, want 0", userID)
	}
}

// TestLegacyTaskNeverReminderEligible verifies that rows predating the
// created_at column (left at 0 by the migration) are excluded from the
// reminder query rather than being treated as infinitely old.
func TestLegacyTaskNeverReminderEligible(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	task, err := repo.CreateTask(context.Background(), 0, "pre-migration task", 0)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	backdateTask(t, db, task.ID, 0) // what the migration leaves behind

	due, err := repo.ListTasksDueForReminder(context.Background(), 1)
	if err != nil {
		t.Fatalf("Failed to list due tasks: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("Task with created_at=0 should never be reminder eligible, got %d due", len(due))
	}
}

// TestEnsureSchemaFatalOnTableFailure verifies that a table creation
// failure is reported as *SchemaInitError instead of being tolerated like a
// column-add failure.
func TestEnsureSchemaFatalOnTableFailure(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	db.Close() // every statement from here on fails

	_, err = EnsureSchema(context.Background(), db)
	if err == nil {
		t.Fatal("EnsureSchema on closed database should fail")
	}
	var initErr *SchemaInitError
	if !errors.As(err, &initErr) {
		t.Errorf("Expected *SchemaInitError, got %T: %v", err, err)
	}
}

func TestMigrationOutcomeString(t *testing.T) {
	cases := map[MigrationOutcome]string{
		MigrationApplied:        "applied",
		MigrationAlreadyApplied: "already applied",
		MigrationFailed:         "failed",
		MigrationOutcome(42):    "unknown",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Errorf("MigrationOutcome(%d).String() = %q, want %q", outcome, got, want)
		}
	}
}
