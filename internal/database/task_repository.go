package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// taskColumns is the column list every task query selects, in scan order.
const taskColumns = `id, text, checked, ord, workflow_id, created_at, last_reminder_sent, reminder_window_minutes`

// TaskRepo handles all task-related database operations, including the
// reminder eligibility query.
type TaskRepo struct {
	db *sql.DB
}

// Create inserts a new task into a workflow (workflowID 0 for unscoped) and
// returns it. The creation timestamp is assigned here; the reminder fields
// start at their "never" values.
func (r *TaskRepo) Create(ctx context.Context, workflowID int, text string, order int) (*models.Task, error) {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (text, checked, ord, workflow_id, created_at, last_reminder_sent, reminder_window_minutes)
		 VALUES (?, 0, ?, ?, ?, 0, 0)`,
		text, order, workflowID, now,
	)
	if err != nil {
		return nil, persistErr("insert task", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistErr("insert task", err)
	}

	return &models.Task{
		ID:         int(id),
		Text:       text,
		Order:      order,
		WorkflowID: workflowID,
		CreatedAt:  now,
	}, nil
}

// ListForWorkflow retrieves all tasks of a workflow ordered by position.
// Equal positions are returned in ascending id order so the ordering is
// stable even when ord values collide.
func (r *TaskRepo) ListForWorkflow(ctx context.Context, workflowID int) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE workflow_id = ?
		 ORDER BY ord ASC, id ASC`,
		workflowID,
	)
	if err != nil {
		return nil, persistErr("list tasks", err)
	}
	return scanTasks(rows)
}

// ListAll retrieves every task regardless of workflow, ordered like
// ListForWorkflow.
func (r *TaskRepo) ListAll(ctx context.Context) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY ord ASC, id ASC`,
	)
	if err != nil {
		return nil, persistErr("list tasks", err)
	}
	return scanTasks(rows)
}

// Get retrieves a single task by id.
func (r *TaskRepo) Get(ctx context.Context, id int) (*models.Task, error) {
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id,
	).Scan(
		&task.ID, &task.Text, &task.Checked, &task.Order, &task.WorkflowID,
		&task.CreatedAt, &task.LastReminderSent, &task.ReminderWindowMinutes,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("get task", err)
	}
	return task, nil
}

// Update replaces a task's mutable fields: text, checked state, and
// position. The reminder fields are only touched by MarkReminderSent and
// SetReminderWindow.
func (r *TaskRepo) Update(ctx context.Context, id int, text string, checked bool, order int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET text = ?, checked = ?, ord = ? WHERE id = ?`,
		text, checked, order, id,
	)
	if err != nil {
		return persistErr("update task", err)
	}
	return nil
}

// Delete removes a task. Deleting a missing id is not an error.
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return persistErr("delete task", err)
	}
	return nil
}

// ============================================================================
// Reminder Evaluation
// ============================================================================

// ListDueForReminder returns every task that is due for its one-time
// reminder: unchecked, with a valid creation time, older than the window,
// and never reminded before. windowMinutes <= 0 selects the global default
// window of models.DefaultReminderWindowMinutes.
//
// The per-task ReminderWindowMinutes field is not consulted here; callers
// that want task-specific windows invoke this once per window value.
func (r *TaskRepo) ListDueForReminder(ctx context.Context, windowMinutes int) ([]*models.Task, error) {
	return r.listDueForReminderAt(ctx, windowMinutes, time.Now().Unix())
}

// listDueForReminderAt is ListDueForReminder with an explicit "now", so the
// cutoff arithmetic is testable without sleeping.
func (r *TaskRepo) listDueForReminderAt(ctx context.Context, windowMinutes int, now int64) ([]*models.Task, error) {
	if windowMinutes <= 0 {
		windowMinutes = models.DefaultReminderWindowMinutes
	}
	cutoff := now - int64(windowMinutes)*60

	// created_at > 0 excludes rows that predate the created_at column;
	// they are never retroactively eligible. Tasks with a creation time in
	// the future fail the cutoff comparison and are likewise excluded.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE checked = 0
		   AND created_at > 0
		   AND created_at <= ?
		   AND last_reminder_sent = 0
		 ORDER BY ord ASC, id ASC`,
		cutoff,
	)
	if err != nil {
		return nil, persistErr("list tasks due for reminder", err)
	}
	return scanTasks(rows)
}

// MarkReminderSent records that a reminder for the task was delivered at the
// given time. Once set, the task never reappears in ListDueForReminder; the
// reminder is one-shot per task lifetime.
func (r *TaskRepo) MarkReminderSent(ctx context.Context, id int, at int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET last_reminder_sent = ? WHERE id = ?`,
		at, id,
	)
	if err != nil {
		return persistErr("mark reminder sent", err)
	}
	return nil
}

// SetReminderWindow stores a per-task reminder window override in minutes.
// 0 restores "inherit the global default".
func (r *TaskRepo) SetReminderWindow(ctx context.Context, id int, minutes int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET reminder_window_minutes = ? WHERE id = ?`,
		minutes, id,
	)
	if err != nil {
		return persistErr("set reminder window", err)
	}
	return nil
}

// scanTasks drains rows into task models. It owns closing rows.
func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.Text, &task.Checked, &task.Order, &task.WorkflowID,
			&task.CreatedAt, &task.LastReminderSent, &task.ReminderWindowMinutes,
		); err != nil {
			return nil, persistErr("scan task row", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("iterate task rows", err)
	}
	return tasks, nil
}
