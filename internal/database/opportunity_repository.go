package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

const opportunityColumns = `id, client_id, title, value, status, stage, owner_id, created_at, updated_at, workflow_id`

// OpportunityRepo handles all sales-pipeline database operations.
type OpportunityRepo struct {
	db *sql.DB
}

// Create inserts a new opportunity for a client and returns it.
// workflowID 0 means the opportunity is not attached to a workflow.
func (r *OpportunityRepo) Create(ctx context.Context, clientID int, title string, value float64, status, stage string, ownerID, workflowID int) (*models.Opportunity, error) {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO opportunities (client_id, title, value, status, stage, owner_id, created_at, updated_at, workflow_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		clientID, title, value, status, stage, ownerID, now, now, workflowID,
	)
	if err != nil {
		return nil, persistErr("insert opportunity", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistErr("insert opportunity", err)
	}

	return &models.Opportunity{
		ID:         int(id),
		ClientID:   clientID,
		Title:      title,
		Value:      value,
		Status:     status,
		Stage:      stage,
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
		WorkflowID: workflowID,
	}, nil
}

// ListAll retrieves every opportunity, most recently updated first.
func (r *OpportunityRepo) ListAll(ctx context.Context) ([]*models.Opportunity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+opportunityColumns+`
		 FROM opportunities
		 ORDER BY updated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, persistErr("list opportunities", err)
	}
	return scanOpportunities(rows)
}

// ListForWorkflow retrieves the opportunities attached to a workflow,
// ordered like ListAll.
func (r *OpportunityRepo) ListForWorkflow(ctx context.Context, workflowID int) ([]*models.Opportunity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+opportunityColumns+`
		 FROM opportunities
		 WHERE workflow_id = ?
		 ORDER BY updated_at DESC, id DESC`,
		workflowID,
	)
	if err != nil {
		return nil, persistErr("list opportunities", err)
	}
	return scanOpportunities(rows)
}

// Update replaces an opportunity's mutable fields and bumps its updated_at.
// The client reference is immutable once assigned.
func (r *OpportunityRepo) Update(ctx context.Context, id int, title string, value float64, status, stage string, ownerID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE opportunities SET title = ?, value = ?, status = ?, stage = ?, owner_id = ?, updated_at = ?
		 WHERE id = ?`,
		title, value, status, stage, ownerID, time.Now().Unix(), id,
	)
	if err != nil {
		return persistErr("update opportunity", err)
	}
	return nil
}

// Delete removes an opportunity. Its interaction log is not cascaded.
// Deleting a missing id is not an error.
func (r *OpportunityRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM opportunities WHERE id = ?`, id); err != nil {
		return persistErr("delete opportunity", err)
	}
	return nil
}

// scanOpportunities drains rows into opportunity models. It owns closing rows.
func scanOpportunities(rows *sql.Rows) ([]*models.Opportunity, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var opps []*models.Opportunity
	for rows.Next() {
		opp := &models.Opportunity{}
		if err := rows.Scan(
			&opp.ID, &opp.ClientID, &opp.Title, &opp.Value, &opp.Status,
			&opp.Stage, &opp.OwnerID, &opp.CreatedAt, &opp.UpdatedAt, &opp.WorkflowID,
		); err != nil {
			return nil, persistErr("scan opportunity row", err)
		}
		opps = append(opps, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("list opportunities", err)
	}
	return opps, nil
}
