package store

import (
	"context"
	"fmt"

	"mailsift/internal/analyzer"
	"mailsift/internal/database"
	"mailsift/internal/models"
)

// SaveAnalysis persists one analysis run for an email: the report is
// upserted into email_meta (re-analysis overwrites, never duplicates) and a
// new draft row is appended to ai_responses. Both writes happen in a single
// transaction so a failed draft insert cannot leave an updated report behind.
func (s *Store) SaveAnalysis(ctx context.Context, emailID string, report *analyzer.Report) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin analysis transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	sentiment := report.SentimentAnalysis
	priority := report.PriorityAssessment
	extraction := report.InformationExtraction
	autoResponse := report.AutoResponse
	categorization := report.Categorization

	// Upsert dialects: ON CONFLICT on Postgres, ON DUPLICATE KEY on MySQL
	upsert := `
		INSERT INTO email_meta (
			email_id,
			sentiment, emotional_score, emotional_indicators, sentiment_assessment,
			priority, urgency_indicators, priority_assessment,
			keywords, contacts, customer_requirements, product_mentions, issue_summary,
			category, processing_priority, overall_summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email_id) DO UPDATE SET
			sentiment = EXCLUDED.sentiment,
			emotional_score = EXCLUDED.emotional_score,
			emotional_indicators = EXCLUDED.emotional_indicators,
			sentiment_assessment = EXCLUDED.sentiment_assessment,
			priority = EXCLUDED.priority,
			urgency_indicators = EXCLUDED.urgency_indicators,
			priority_assessment = EXCLUDED.priority_assessment,
			keywords = EXCLUDED.keywords,
			contacts = EXCLUDED.contacts,
			customer_requirements = EXCLUDED.customer_requirements,
			product_mentions = EXCLUDED.product_mentions,
			issue_summary = EXCLUDED.issue_summary,
			category = EXCLUDED.category,
			processing_priority = EXCLUDED.processing_priority,
			overall_summary = EXCLUDED.overall_summary,
			updated_at = CURRENT_TIMESTAMP`
	if s.db.DriverName() == database.DriverMySQL {
		upsert = `
		INSERT INTO email_meta (
			email_id,
			sentiment, emotional_score, emotional_indicators, sentiment_assessment,
			priority, urgency_indicators, priority_assessment,
			keywords, contacts, customer_requirements, product_mentions, issue_summary,
			category, processing_priority, overall_summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			sentiment = VALUES(sentiment),
			emotional_score = VALUES(emotional_score),
			emotional_indicators = VALUES(emotional_indicators),
			sentiment_assessment = VALUES(sentiment_assessment),
			priority = VALUES(priority),
			urgency_indicators = VALUES(urgency_indicators),
			priority_assessment = VALUES(priority_assessment),
			keywords = VALUES(keywords),
			contacts = VALUES(contacts),
			customer_requirements = VALUES(customer_requirements),
			product_mentions = VALUES(product_mentions),
			issue_summary = VALUES(issue_summary),
			category = VALUES(category),
			processing_priority = VALUES(processing_priority),
			overall_summary = VALUES(overall_summary),
			updated_at = CURRENT_TIMESTAMP`
	}
	upsert = s.db.Rebind(upsert)

	_, err = tx.ExecContext(ctx, upsert,
		emailID,
		sentiment.Sentiment,
		sentiment.EmotionalScore,
		models.StringList(sentiment.EmotionalIndicators),
		sentiment.Assessment,
		priority.Priority,
		models.StringList(priority.UrgencyIndicators),
		priority.Assessment,
		models.StringList(extraction.SentimentIndicators),
		models.StringList(report.Contacts()),
		models.StringList(extraction.CustomerRequirements),
		models.StringList(extraction.Metadata.ProductMentions),
		extraction.Metadata.IssueSummary,
		categorization.Category,
		categorization.ProcessingPriority,
		categorization.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert analysis report: %w", err)
	}

	insert := s.db.Rebind(`
		INSERT INTO ai_responses (email_id, draft, tone, key_references, is_ready, status)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err = tx.ExecContext(ctx, insert,
		emailID,
		autoResponse.ResponseText,
		autoResponse.ToneAdjustment,
		models.StringList(autoResponse.KeyReferences),
		autoResponse.IsReadyToSend,
		report.DraftStatus(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert draft response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis transaction: %w", err)
	}

	s.logger.Info().Str("email_id", emailID).Msg("Analysis and draft saved")
	return nil
}
