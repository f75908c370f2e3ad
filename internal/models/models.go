package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a string slice stored as a JSON text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// User owns imported emails
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Email represents an imported email message. Immutable after ingestion
// except for its derived analysis relations.
type Email struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	Sender     string    `db:"sender" json:"sender"`
	Subject    string    `db:"subject" json:"subject"`
	Body       string    `db:"body" json:"body"`
	ReceivedAt time.Time `db:"received_at" json:"received_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// EmailMeta is the stored analysis report, one-to-one with an email.
// Re-analysis overwrites the existing row via upsert, never duplicates it.
type EmailMeta struct {
	ID                   int        `db:"id" json:"id"`
	EmailID              string     `db:"email_id" json:"email_id"`
	Sentiment            string     `db:"sentiment" json:"sentiment"`
	EmotionalScore       float64    `db:"emotional_score" json:"emotional_score"`
	EmotionalIndicators  StringList `db:"emotional_indicators" json:"emotional_indicators"`
	SentimentAssessment  string     `db:"sentiment_assessment" json:"sentiment_assessment"`
	Priority             string     `db:"priority" json:"priority"`
	UrgencyIndicators    StringList `db:"urgency_indicators" json:"urgency_indicators"`
	PriorityAssessment   string     `db:"priority_assessment" json:"priority_assessment"`
	Keywords             StringList `db:"keywords" json:"keywords"`
	Contacts             StringList `db:"contacts" json:"contacts"`
	CustomerRequirements StringList `db:"customer_requirements" json:"customer_requirements"`
	ProductMentions      StringList `db:"product_mentions" json:"product_mentions"`
	IssueSummary         string     `db:"issue_summary" json:"issue_summary"`
	Category             string     `db:"category" json:"category"`
	ProcessingPriority   int        `db:"processing_priority" json:"processing_priority"`
	OverallSummary       string     `db:"overall_summary" json:"overall_summary"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// Draft status values derived from the readiness flag
const (
	DraftStatusReady   = "ready"
	DraftStatusPending = "pending"
)

// DraftResponse is a generated reply, one-to-many with an email.
// Append-only: each analysis run adds a new row and history is retained.
type DraftResponse struct {
	ID            int        `db:"id" json:"id"`
	EmailID       string     `db:"email_id" json:"email_id"`
	Draft         string     `db:"draft" json:"draft"`
	Tone          string     `db:"tone" json:"tone"`
	KeyReferences StringList `db:"key_references" json:"key_references"`
	IsReady       bool       `db:"is_ready" json:"is_ready"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// AnalyzedEmail is an email joined with its analysis report
type AnalyzedEmail struct {
	Email
	Meta EmailMeta `json:"meta"`
}

// LabelCount is a group-by aggregate bucket for dashboard reporting
type LabelCount struct {
	Label string `db:"label" json:"label"`
	Count int    `db:"count" json:"count"`
}

// PriorityCount is a processing-priority aggregate bucket
type PriorityCount struct {
	ProcessingPriority int `db:"processing_priority" json:"processing_priority"`
	Count              int `db:"count" json:"count"`
}

// DashboardData holds aggregate reporting for a user's analyzed emails
type DashboardData struct {
	TotalEmails              int             `json:"total_emails"`
	UrgentEmails             int             `json:"urgent_emails"`
	SentimentCounts          []LabelCount    `json:"sentiment_counts"`
	CategoryCounts           []LabelCount    `json:"category_counts"`
	ProcessingPriorityCounts []PriorityCount `json:"processing_priority_counts"`
	AverageEmotionalScore    float64         `json:"average_emotional_score"`
}
