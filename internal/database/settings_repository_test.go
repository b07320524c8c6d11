package database

import (
	"context"
	"testing"

	_ "modernc.org/sqlite"
)

// TestSettingsDefaults verifies reads of absent keys return the supplied
// default instead of an error.
func TestSettingsDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if got := repo.GetSettingString(ctx, "missing", "fallback"); got != "fallback" {
		t.Errorf("GetSettingString(missing) = %q, want fallback", got)
	}
	if got := repo.GetSettingInt(ctx, "missing", 42); got != 42 {
		t.Errorf("GetSettingInt(missing) = %d, want 42", got)
	}
}

// TestSettingsUpsert verifies set-then-get and that setting an existing key
// replaces the value without growing the table.
func TestSettingsUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := repo.SetSettingString(ctx, "theme", "dark"); err != nil {
		t.Fatalf("Failed to set setting: %v", err)
	}
	if err := repo.SetSettingString(ctx, "theme", "light"); err != nil {
		t.Fatalf("Failed to overwrite setting: %v", err)
	}
	if got := repo.GetSettingString(ctx, "theme", ""); got != "light" {
		t.Errorf("theme = %q, want light", got)
	}
	if got := countRows(t, db, "settings"); got != 1 {
		t.Errorf("Expected 1 settings row, got %d", got)
	}
}

// TestSettingsIntRoundTrip verifies integer encoding and the malformed-value
// fallback.
func TestSettingsIntRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := repo.SetSettingInt(ctx, "reminder.window", 720); err != nil {
		t.Fatalf("Failed to set int setting: %v", err)
	}
	if got := repo.GetSettingInt(ctx, "reminder.window", 0); got != 720 {
		t.Errorf("reminder.window = %d, want 720", got)
	}

	// A value that is not a number falls back to the default.
	repo.SetSettingString(ctx, "reminder.window", "tomorrow")
	if got := repo.GetSettingInt(ctx, "reminder.window", 1440); got != 1440 {
		t.Errorf("Malformed int setting should fall back, got %d", got)
	}
}
