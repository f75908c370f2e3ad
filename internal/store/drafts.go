package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mailsift/internal/models"
)

// DraftsByEmail returns the draft history for an email, newest first
func (s *Store) DraftsByEmail(ctx context.Context, emailID string) ([]models.DraftResponse, error) {
	query := s.db.Rebind(`
		SELECT id, email_id, draft, tone, key_references, is_ready, status, created_at
		FROM ai_responses
		WHERE email_id = ?
		ORDER BY created_at DESC, id DESC`)

	var drafts []models.DraftResponse
	if err := s.db.SelectContext(ctx, &drafts, query, emailID); err != nil {
		return nil, fmt.Errorf("failed to select drafts: %w", err)
	}
	return drafts, nil
}

// DraftWithEmail is a draft joined with its email's sender and subject,
// used when sending a draft reply back to the original sender.
type DraftWithEmail struct {
	models.DraftResponse
	Sender  string `db:"sender"`
	Subject string `db:"subject"`
}

// GetDraft fetches one draft with its email context, returning ErrNotFound
// when it doesn't exist.
func (s *Store) GetDraft(ctx context.Context, draftID int) (*DraftWithEmail, error) {
	query := s.db.Rebind(`
		SELECT d.id, d.email_id, d.draft, d.tone, d.key_references, d.is_ready, d.status, d.created_at,
			e.sender, e.subject
		FROM ai_responses d
		JOIN emails e ON e.id = d.email_id
		WHERE d.id = ?`)

	var draft DraftWithEmail
	if err := s.db.GetContext(ctx, &draft, query, draftID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &draft, nil
}
