package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/flowdeskhq/flowdesk/internal/models"
)

// UserRepo handles local account storage. Hash and salt arrive as opaque
// strings from the authentication layer and are stored verbatim.
type UserRepo struct {
	db *sql.DB
}

// Create inserts a new user. Usernames are unique; a taken username is
// reported as models.ErrDuplicateUsername, not as an upsert.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash, salt string) (*models.User, error) {
	now := time.Now().Unix()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, salt, created_at)
		 VALUES (?, ?, ?, ?)`,
		username, passwordHash, salt, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrDuplicateUsername
		}
		return nil, persistErr("insert user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, persistErr("insert user", err)
	}

	return &models.User{
		ID:           int(id),
		Username:     username,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    now,
	}, nil
}

// GetByUsername retrieves a user by username for the authentication layer.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, salt, created_at
		 FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("get user", err)
	}
	return user, nil
}

// Delete removes a user. Workflows owned by the user keep their user_id;
// nothing cascades. Deleting a missing id is not an error.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return persistErr("delete user", err)
	}
	return nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
