// Package analysis wires the job queue, analyzer client and persistence
// layer into the email analysis pipeline.
package analysis

import (
	"context"
	"fmt"

	"mailsift/internal/analyzer"
	"mailsift/internal/models"
	"mailsift/internal/queue"

	"github.com/rs/zerolog"
)

// Analyzer produces a structured report for one email
type Analyzer interface {
	Analyze(ctx context.Context, email models.Email) (*analyzer.Report, error)
}

// Repository is the slice of the store the pipeline needs
type Repository interface {
	UnanalyzedEmails(ctx context.Context, userID string) ([]models.Email, error)
	SaveAnalysis(ctx context.Context, emailID string, report *analyzer.Report) error
}

// Service runs the analysis pipeline: emails are submitted to a sequential
// queue, analyzed by the external service and persisted as a report plus a
// draft response.
type Service struct {
	analyzer Analyzer
	repo     Repository
	queue    *queue.Queue
	logger   zerolog.Logger
}

// New creates the pipeline service and its queue. Concurrency is the max
// number of in-flight analyzer calls; the production default is 1.
func New(analyzer Analyzer, repo Repository, concurrency int, logger zerolog.Logger) *Service {
	s := &Service{
		analyzer: analyzer,
		repo:     repo,
		logger:   logger,
	}
	s.queue = queue.New(concurrency, s.process, logger)
	return s
}

// process is the queue runner: analyze one email and persist the result.
// Concurrent submissions for the same email are not deduplicated; the later
// save overwrites the report and appends its own draft.
func (s *Service) process(ctx context.Context, email models.Email) (*analyzer.Report, error) {
	report, err := s.analyzer.Analyze(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveAnalysis(ctx, email.ID, report); err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}
	return report, nil
}

// Enqueue submits one email for analysis without blocking. The returned job
// reports that email's own success or failure.
func (s *Service) Enqueue(email models.Email) *queue.Job {
	return s.queue.Submit(email)
}

// ProcessEmails selects all of the user's emails that have no analysis
// report, enqueues each in query order and waits for the queue to drain.
// Failed emails keep no report and are re-selected on the next run.
func (s *Service) ProcessEmails(ctx context.Context, userID string) (int, error) {
	emails, err := s.repo.UnanalyzedEmails(ctx, userID)
	if err != nil {
		return 0, err
	}

	for _, email := range emails {
		s.Enqueue(email)
	}

	if err := s.queue.Drain(ctx); err != nil {
		return len(emails), err
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("enqueued", len(emails)).
		Msg("All pending emails processed")
	return len(emails), nil
}

// AnalyzeNow runs the analyzer directly for an ad-hoc request, bypassing the
// queue and the persistence step. Failures surface synchronously.
func (s *Service) AnalyzeNow(ctx context.Context, email models.Email) (*analyzer.Report, error) {
	return s.analyzer.Analyze(ctx, email)
}
