package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// SheetRepo handles all sheet database operations. Sheet content is an
// opaque CSV blob; parsing it is the editor's job, not this layer's.
type SheetRepo struct {
	db *sql.DB
}

// Save stores a sheet under its name, replacing the content if the name
// already exists, and remembers it as the last-saved sheet in settings.
// Both writes happen in one transaction.
func (r *SheetRepo) Save(ctx context.Context, name, csv string) (*models.Sheet, error) {
	now := time.Now().Unix()
	sheet := &models.Sheet{
		Name:      name,
		CSV:       csv,
		UpdatedAt: now,
	}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sheets (name, csv, updated_at)
			 VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET
				csv = excluded.csv,
				updated_at = excluded.updated_at`,
			name, csv, now,
		)
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx,
			`SELECT id FROM sheets WHERE name = ?`, name,
		).Scan(&sheet.ID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			models.SettingLastSavedSheet, name,
		)
		return err
	})
	if err != nil {
		return nil, persistErr("save sheet", err)
	}

	return sheet, nil
}

// Get retrieves a sheet by name.
func (r *SheetRepo) Get(ctx context.Context, name string) (*models.Sheet, error) {
	sheet := &models.Sheet{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, csv, updated_at FROM sheets WHERE name = ?`, name,
	).Scan(&sheet.ID, &sheet.Name, &sheet.CSV, &sheet.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("get sheet", err)
	}
	return sheet, nil
}

// List retrieves all sheets, most recently saved first.
func (r *SheetRepo) List(ctx context.Context) ([]*models.Sheet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, csv, updated_at FROM sheets ORDER BY updated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, persistErr("list sheets", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var sheets []*models.Sheet
	for rows.Next() {
		sheet := &models.Sheet{}
		if err := rows.Scan(&sheet.ID, &sheet.Name, &sheet.CSV, &sheet.UpdatedAt); err != nil {
			return nil, persistErr("scan sheet row", err)
		}
		sheets = append(sheets, sheet)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("list sheets", err)
	}
	return sheets, nil
}

// Delete removes a sheet. The last-saved pointer in settings is left as is;
// callers that care resolve a dangling name to "no sheet". Deleting a
// missing id is not an error.
func (r *SheetRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sheets WHERE id = ?`, id); err != nil {
		return persistErr("delete sheet", err)
	}
	return nil
}
