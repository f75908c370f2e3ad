package store

import (
	"context"
	"fmt"

	"mailsift/internal/models"
)

// Dashboard computes aggregate reporting over a user's analyzed emails
func (s *Store) Dashboard(ctx context.Context, userID string) (*models.DashboardData, error) {
	data := &models.DashboardData{}

	totalQuery := s.db.Rebind(`SELECT COUNT(*) FROM emails WHERE user_id = ?`)
	if err := s.db.GetContext(ctx, &data.TotalEmails, totalQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to count emails: %w", err)
	}

	urgentQuery := s.db.Rebind(`
		SELECT COUNT(*)
		FROM email_meta m
		JOIN emails e ON e.id = m.email_id
		WHERE e.user_id = ? AND m.priority = 'Urgent'`)
	if err := s.db.GetContext(ctx, &data.UrgentEmails, urgentQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to count urgent emails: %w", err)
	}

	sentimentQuery := s.db.Rebind(`
		SELECT m.sentiment AS label, COUNT(*) AS count
		FROM email_meta m
		JOIN emails e ON e.id = m.email_id
		WHERE e.user_id = ?
		GROUP BY m.sentiment`)
	if err := s.db.SelectContext(ctx, &data.SentimentCounts, sentimentQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to group by sentiment: %w", err)
	}

	categoryQuery := s.db.Rebind(`
		SELECT m.category AS label, COUNT(*) AS count
		FROM email_meta m
		JOIN emails e ON e.id = m.email_id
		WHERE e.user_id = ?
		GROUP BY m.category`)
	if err := s.db.SelectContext(ctx, &data.CategoryCounts, categoryQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to group by category: %w", err)
	}

	priorityQuery := s.db.Rebind(`
		SELECT m.processing_priority, COUNT(*) AS count
		FROM email_meta m
		JOIN emails e ON e.id = m.email_id
		WHERE e.user_id = ?
		GROUP BY m.processing_priority
		ORDER BY m.processing_priority ASC`)
	if err := s.db.SelectContext(ctx, &data.ProcessingPriorityCounts, priorityQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to group by processing priority: %w", err)
	}

	avgQuery := s.db.Rebind(`
		SELECT COALESCE(AVG(m.emotional_score), 0)
		FROM email_meta m
		JOIN emails e ON e.id = m.email_id
		WHERE e.user_id = ?`)
	if err := s.db.GetContext(ctx, &data.AverageEmotionalScore, avgQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to average emotional score: %w", err)
	}

	return data, nil
}
