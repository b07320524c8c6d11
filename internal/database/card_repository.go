package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// CardRepo handles all canvas-card database operations.
type CardRepo struct {
	db *sql.DB
}

// Create inserts a new card and returns it.
func (r *CardRepo) Create(ctx context.Context, title string, x, y, w, h int, content string) (*models.Card, error) {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (title, x, y, w, h, content, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		title, x, y, w, h, content, now,
	)
	if err != nil {
		return nil, persistErr("insert card", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistErr("insert card", err)
	}

	return &models.Card{
		ID:        int(id),
		Title:     title,
		X:         x,
		Y:         y,
		W:         w,
		H:         h,
		Content:   content,
		UpdatedAt: now,
	}, nil
}

// ListAll retrieves every card, most recently updated first.
func (r *CardRepo) ListAll(ctx context.Context) ([]*models.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, x, y, w, h, content, updated_at
		 FROM cards
		 ORDER BY updated_at DESC, id DESC`,
	)
	if err != nil {
		return nil, persistErr("list cards", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var cards []*models.Card
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(
			&card.ID, &card.Title, &card.X, &card.Y, &card.W, &card.H,
			&card.Content, &card.UpdatedAt,
		); err != nil {
			return nil, persistErr("scan card row", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("list cards", err)
	}
	return cards, nil
}

// Update replaces a card's mutable fields and bumps its updated_at.
func (r *CardRepo) Update(ctx context.Context, id int, title string, x, y, w, h int, content string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cards SET title = ?, x = ?, y = ?, w = ?, h = ?, content = ?, updated_at = ?
		 WHERE id = ?`,
		title, x, y, w, h, content, time.Now().Unix(), id,
	)
	if err != nil {
		return persistErr("update card", err)
	}
	return nil
}

// Delete removes a card. Deleting a missing id is not an error.
func (r *CardRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
		return persistErr("delete card", err)
	}
	return nil
}
