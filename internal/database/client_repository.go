package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// ClientRepo handles all CRM contact database operations.
type ClientRepo struct {
	db *sql.DB
}

// Create inserts a new client and returns it.
func (r *ClientRepo) Create(ctx context.Context, name, company, email, phone string) (*models.Client, error) {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (name, company, email, phone, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, company, email, phone, now, now,
	)
	if err != nil {
		return nil, persistErr("insert client", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistErr("insert client", err)
	}

	return &models.Client{
		ID:        int(id),
		Name:      name,
		Company:   company,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ListAll retrieves every client in alphabetical order.
func (r *ClientRepo) ListAll(ctx context.Context) ([]*models.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, company, email, phone, created_at, updated_at
		 FROM clients
		 ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, persistErr("list clients", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		if err := rows.Scan(
			&client.ID, &client.Name, &client.Company, &client.Email,
			&client.Phone, &client.CreatedAt, &client.UpdatedAt,
		); err != nil {
			return nil, persistErr("scan client row", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, persistErr("list clients", err)
	}
	return clients, nil
}

// Update replaces a client's contact fields and bumps its updated_at.
func (r *ClientRepo) Update(ctx context.Context, id int, name, company, email, phone string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, company = ?, email = ?, phone = ?, updated_at = ?
		 WHERE id = ?`,
		name, company, email, phone, time.Now().Unix(), id,
	)
	if err != nil {
		return persistErr("update client", err)
	}
	return nil
}

// Delete removes a client. Opportunities referencing it are not cascaded.
// Deleting a missing id is not an error.
func (r *ClientRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return persistErr("delete client", err)
	}
	return nil
}
