package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// FileRepo handles all file-tracking database operations.
type FileRepo struct {
	db *sql.DB
}

// Add records a file under a workflow. Path is the natural key: adding a
// path that is already tracked updates name, size, mtime, and workflow in
// place instead of creating a second row. The returned model carries the
// row's id either way.
func (r *FileRepo) Add(ctx context.Context, path, name string, size, mtime int64, workflowID int) (*models.File, error) {
	now := time.Now().Unix()
	file := &models.File{
		Path:       path,
		Name:       name,
		Size:       size,
		MTime:      mtime,
		WorkflowID: workflowID,
	}

	// Upsert and id resolution run in one transaction so a concurrent
	// delete cannot leave us returning a stale id.
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO files (path, name, size, mtime, added_at, workflow_id)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(path) DO UPDATE SET
				name = excluded.name,
				size = excluded.size,
				mtime = excluded.mtime,
				workflow_id = excluded.workflow_id`,
			path, name, size, mtime, now, workflowID,
		)
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx,
			`SELECT id, added_at FROM files WHERE path = ?`, path,
		).Scan(&file.ID, &file.AddedAt)
	})
	if err != nil {
		return nil, persistErr("add file", err)
	}

	return file, nil
}

// GetByPath retrieves a tracked file by its path.
func (r *FileRepo) GetByPath(ctx context.Context, path string) (*models.File, error) {
	file := &models.File{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, path, name, size, mtime, added_at, workflow_id
		 FROM files WHERE path = ?`,
		path,
	).Scan(&file.ID, &file.Path, &file.Name, &file.Size, &file.MTime, &file.AddedAt, &file.WorkflowID)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("get file", err)
	}
	return file, nil
}

// ListForWorkflow retrieves all files of a workflow, most recently added
// first.
func (r *FileRepo) ListForWorkflow(ctx context.Context, workflowID int) ([]*models.File, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, path, name, size, mtime, added_at, workflow_id
		 FROM files
		 WHERE workflow_id = ?
		 ORDER BY added_at DESC, id DESC`,
		workflowID,
	)
	if err != nil {
		return nil, persistErr("list files", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var files []*models.File
	for rows.Next() {
		file := &models.File{}
		if err := rows.Scan(
			&file.ID, &file.Path, &file.Name, &file.Size,
			&file.MTime, &file.AddedAt, &file.WorkflowID,
		); err != nil {
			return nil, persistErr("scan file row", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("list files", err)
	}
	return files, nil
}

// Delete stops tracking a file. Deleting a missing id is not an error.
func (r *FileRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id); err != nil {
		return persistErr("delete file", err)
	}
	return nil
}
