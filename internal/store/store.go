// Package store is the persistence layer for emails, analysis reports and
// generated drafts.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mailsift/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a user, email or draft does not exist
var ErrNotFound = errors.New("not found")

// Store provides database access for the analysis pipeline and API
type Store struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// New creates a store backed by the given database connection
func New(db *sqlx.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// CreateUser inserts a new user and returns it
func (s *Store) CreateUser(ctx context.Context, email, name string) (*models.User, error) {
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query := s.db.Rebind(`INSERT INTO users (id, email, name, created_at) VALUES (?, ?, ?, ?)`)
	if _, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.Name, user.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser fetches a user by id, returning ErrNotFound when it doesn't exist
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	query := s.db.Rebind(`SELECT id, email, name, created_at FROM users WHERE id = ?`)
	if err := s.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
