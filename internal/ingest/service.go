package ingest

import (
	"context"
	"fmt"
	"io"

	"mailsift/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Repository is the slice of the store ingestion needs
type Repository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	InsertEmails(ctx context.Context, emails []models.Email) (int, error)
}

// Result summarizes one upload: how many emails were stored (duplicates
// skipped) and which rows were rejected.
type Result struct {
	InsertedCount int
	RowErrors     []RowError
}

// Service parses uploads and stores the valid rows
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// New creates an ingestion service
func New(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Ingest parses an uploaded file for the user and bulk-inserts the valid
// rows in one statement with duplicate skipping. Row-level defects are
// reported in the result, never as an error. The caller is responsible for
// triggering batch analysis afterwards, out-of-band.
func (s *Service) Ingest(ctx context.Context, userID string, r io.Reader) (*Result, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	rows, rowErrors, err := ParseRows(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUpload, err)
	}

	emails := make([]models.Email, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, models.Email{
			ID:         uuid.NewString(),
			UserID:     userID,
			Sender:     row.Sender,
			Subject:    row.Subject,
			Body:       row.Body,
			ReceivedAt: row.ReceivedAt,
		})
	}

	inserted, err := s.repo.InsertEmails(ctx, emails)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("inserted", inserted).
		Int("row_errors", len(rowErrors)).
		Msg("Email upload ingested")

	return &Result{
		InsertedCount: inserted,
		RowErrors:     rowErrors,
	}, nil
}
