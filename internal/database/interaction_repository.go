package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// InteractionRepo handles the append-only interaction log on opportunities.
// Entries are never updated after insertion.
type InteractionRepo struct {
	db *sql.DB
}

// Add appends an interaction to an opportunity's log. when is the time the
// interaction actually happened; the creation timestamp of the row is
// assigned here.
func (r *InteractionRepo) Add(ctx context.Context, opportunityID int, kind, note string, when int64) (*models.Interaction, error) {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO interactions (opportunity_id, kind, note, when_ts, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		opportunityID, kind, note, when, now,
	)
	if err != nil {
		return nil, persistErr("insert interaction", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistErr("insert interaction", err)
	}

	return &models.Interaction{
		ID:            int(id),
		OpportunityID: opportunityID,
		Kind:          kind,
		Note:          note,
		When:          when,
		CreatedAt:     now,
	}, nil
}

// ListForOpportunity retrieves an opportunity's log in chronological order.
func (r *InteractionRepo) ListForOpportunity(ctx context.Context, opportunityID int) ([]*models.Interaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, opportunity_id, kind, note, when_ts, created_at
		 FROM interactions
		 WHERE opportunity_id = ?
		 ORDER BY when_ts ASC, id ASC`,
		opportunityID,
	)
	if err != nil {
		return nil, persistErr("list interactions", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var interactions []*models.Interaction
	for rows.Next() {
		in := &models.Interaction{}
		if err := rows.Scan(
			&in.ID, &in.OpportunityID, &in.Kind, &in.Note, &in.When, &in.CreatedAt,
		); err != nil {
			return nil, persistErr("scan interaction row", err)
		}
		interactions = append(interactions, in)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("list interactions", err)
	}
	return interactions, nil
}

// Delete removes a log entry. Deleting a missing id is not an error.
func (r *InteractionRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = ?`, id); err != nil {
		return persistErr("delete interaction", err)
	}
	return nil
}
