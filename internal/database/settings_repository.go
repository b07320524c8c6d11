package database

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
)

// SettingsRepo is a generic key→string store used both by the application
// and internally (e.g. the last-saved sheet pointer). Reads never fail from
// the caller's point of view: any problem falls back to the supplied
// default, so settings lookups are always safe in rendering code.
type SettingsRepo struct {
	db *sql.DB
}

// GetString returns the value stored under key, or def when the key is
// absent or the read fails.
func (r *SettingsRepo) GetString(ctx context.Context, key, def string) string {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return def
	}
	if err != nil {
		slog.Debug("settings read failed, using default", "key", key, "error", err)
		return def
	}
	return value
}

// GetInt is GetString with integer parsing; malformed values also fall back
// to def.
func (r *SettingsRepo) GetInt(ctx context.Context, key string, def int) int {
	raw := r.GetString(ctx, key, "")
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Debug("settings value is not an integer, using default", "key", key, "value", raw)
		return def
	}
	return value
}

// SetString upserts a value under key.
func (r *SettingsRepo) SetString(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return persistErr("set setting", err)
	}
	return nil
}

// SetInt upserts an integer value under key.
func (r *SettingsRepo) SetInt(ctx context.Context, key string, value int) error {
	return r.SetString(ctx, key, strconv.Itoa(value))
}
