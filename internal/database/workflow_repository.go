package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// WorkflowRepo handles all workflow-related database operations.
type WorkflowRepo struct {
	db *sql.DB
}

// Create inserts a new workflow owned by userID (0 for unscoped) and returns
// it with its assigned id and timestamps.
func (r *WorkflowRepo) Create(ctx context.Context, name string, userID int) (*models.Workflow, error) {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO workflows (name, created_at, updated_at, user_id)
		 VALUES (?, ?, ?, ?)`,
		name, now, now, userID,
	)
	if err != nil {
		return nil, persistErr("insert workflow", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistErr("insert workflow", err)
	}

	return &models.Workflow{
		ID:        int(id),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
	}, nil
}

// ListForUser retrieves all workflows owned by userID, newest first.
func (r *WorkflowRepo) ListForUser(ctx context.Context, userID int) ([]*models.Workflow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at, user_id
		 FROM workflows
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, persistErr("list workflows", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var workflows []*models.Workflow
	for rows.Next() {
		wf := &models.Workflow{}
		if err := rows.Scan(&wf.ID, &wf.Name, &wf.CreatedAt, &wf.UpdatedAt, &wf.UserID); err != nil {
			return nil, persistErr("scan workflow row", err)
		}
		workflows = append(workflows, wf)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("list workflows", err)
	}
	return workflows, nil
}

// Rename updates a workflow's name.
func (r *WorkflowRepo) Rename(ctx context.Context, id int, name string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE workflows SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().Unix(), id,
	)
	if err != nil {
		return persistErr("update workflow", err)
	}
	return nil
}

// Delete removes a workflow. Scoped children (tasks, files, opportunities)
// keep their workflow_id; nothing cascades. Deleting a missing id is not an
// error.
func (r *WorkflowRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workflows WHERE id = ?`, id); err != nil {
		return persistErr("delete workflow", err)
	}
	return nil
}
