package store

import (
	"context"
	"fmt"
	"strings"

	"mailsift/internal/database"
	"mailsift/internal/models"
)

// InsertEmails bulk-inserts emails with duplicate skipping. Rows matching
// the unique import constraint are silently dropped; the returned count is
// the number of emails actually stored. The skip clause is dialect-specific:
// ON CONFLICT DO NOTHING on Postgres, INSERT IGNORE on MySQL.
func (s *Store) InsertEmails(ctx context.Context, emails []models.Email) (int, error) {
	if len(emails) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(emails))
	args := make([]interface{}, 0, len(emails)*6)
	for _, email := range emails {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?)")
		args = append(args, email.ID, email.UserID, email.Sender, email.Subject, email.Body, email.ReceivedAt)
	}

	verb, skip := "INSERT INTO", " ON CONFLICT DO NOTHING"
	if s.db.DriverName() == database.DriverMySQL {
		verb, skip = "INSERT IGNORE INTO", ""
	}

	query := s.db.Rebind(fmt.Sprintf(
		`%s emails (id, user_id, sender, subject, body, received_at) VALUES %s%s`,
		verb, strings.Join(placeholders, ", "), skip,
	))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert emails: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count inserted emails: %w", err)
	}

	return int(inserted), nil
}

// UnanalyzedEmails returns the user's emails that have no analysis report
// yet, oldest first. The predicate is evaluated fresh on every call, so
// emails whose analysis failed before are naturally re-selected.
func (s *Store) UnanalyzedEmails(ctx context.Context, userID string) ([]models.Email, error) {
	query := s.db.Rebind(`
		SELECT e.id, e.user_id, e.sender, e.subject, e.body, e.received_at, e.created_at
		FROM emails e
		LEFT JOIN email_meta m ON m.email_id = e.id
		WHERE e.user_id = ? AND m.id IS NULL
		ORDER BY e.received_at ASC`)

	var emails []models.Email
	if err := s.db.SelectContext(ctx, &emails, query, userID); err != nil {
		return nil, fmt.Errorf("failed to select unanalyzed emails: %w", err)
	}
	return emails, nil
}

// EmailFilter narrows and pages the analyzed-email listing
type EmailFilter struct {
	UserID             string
	Sentiment          string
	Priority           string
	Category           string
	ProcessingPriority *int
	Search             string
	SortBy             string
	SortOrder          string
	Page               int
	Limit              int
}

// sortColumns whitelists the sortable fields and maps them to columns
var sortColumns = map[string]string{
	"created_at":          "e.created_at",
	"updated_at":          "m.updated_at",
	"sentiment":           "m.sentiment",
	"priority":            "m.priority",
	"category":            "m.category",
	"processing_priority": "m.processing_priority",
}

// OrderClause resolves the filter's sort field and direction against the
// whitelist, falling back to created_at DESC.
func (f EmailFilter) OrderClause() string {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "e.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// whereClause builds the filter predicates and their arguments
func (f EmailFilter) whereClause() (string, []interface{}) {
	conditions := []string{"e.user_id = ?"}
	args := []interface{}{f.UserID}

	if f.Sentiment != "" {
		conditions = append(conditions, "m.sentiment = ?")
		args = append(args, f.Sentiment)
	}
	if f.Priority != "" {
		conditions = append(conditions, "m.priority = ?")
		args = append(args, f.Priority)
	}
	if f.Category != "" {
		conditions = append(conditions, "LOWER(m.category) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Category)+"%")
	}
	if f.ProcessingPriority != nil {
		conditions = append(conditions, "m.processing_priority = ?")
		args = append(args, *f.ProcessingPriority)
	}
	if f.Search != "" {
		conditions = append(conditions,
			"(LOWER(m.issue_summary) LIKE ? OR LOWER(m.overall_summary) LIKE ? OR LOWER(m.sentiment_assessment) LIKE ? OR LOWER(m.priority_assessment) LIKE ?)")
		term := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, term, term, term, term)
	}

	return strings.Join(conditions, " AND "), args
}

// AnalyzedEmails returns the user's emails that have a completed analysis,
// filtered, sorted and paginated, along with the total match count.
func (s *Store) AnalyzedEmails(ctx context.Context, filter EmailFilter) ([]models.AnalyzedEmail, int, error) {
	where, args := filter.whereClause()

	countQuery := s.db.Rebind(fmt.Sprintf(
		`SELECT COUNT(*) FROM emails e JOIN email_meta m ON m.email_id = e.id WHERE %s`, where))

	var total int
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count analyzed emails: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	listQuery := s.db.Rebind(fmt.Sprintf(`
		SELECT
			e.id, e.user_id, e.sender, e.subject, e.body, e.received_at, e.created_at,
			m.id AS "meta.id", m.email_id AS "meta.email_id",
			m.sentiment AS "meta.sentiment", m.emotional_score AS "meta.emotional_score",
			m.emotional_indicators AS "meta.emotional_indicators",
			m.sentiment_assessment AS "meta.sentiment_assessment",
			m.priority AS "meta.priority", m.urgency_indicators AS "meta.urgency_indicators",
			m.priority_assessment AS "meta.priority_assessment",
			m.keywords AS "meta.keywords", m.contacts AS "meta.contacts",
			m.customer_requirements AS "meta.customer_requirements",
			m.product_mentions AS "meta.product_mentions", m.issue_summary AS "meta.issue_summary",
			m.category AS "meta.category", m.processing_priority AS "meta.processing_priority",
			m.overall_summary AS "meta.overall_summary",
			m.created_at AS "meta.created_at", m.updated_at AS "meta.updated_at"
		FROM emails e
		JOIN email_meta m ON m.email_id = e.id
		WHERE %s
		ORDER BY %s
		LIMIT ? OFFSET ?`, where, filter.OrderClause()))

	listArgs := append(append([]interface{}{}, args...), limit, offset)

	var emails []models.AnalyzedEmail
	if err := s.db.SelectContext(ctx, &emails, listQuery, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to select analyzed emails: %w", err)
	}

	return emails, total, nil
}
