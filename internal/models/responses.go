package models

import "time"

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// DBHealthResponse represents a database health check response
// @Description Database health check response
type DBHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Connected bool          `json:"connected" example:"true"`                   // Database connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Database ping latency
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// CreateUserRequest represents the request body for user creation
// @Description User creation payload
type CreateUserRequest struct {
	Email string `json:"email" example:"jane@example.com"` // User email address
	Name  string `json:"name" example:"Jane Doe"`          // Display name
}

// CreateUserResponse represents the response from user creation
// @Description User creation response payload
type CreateUserResponse struct {
	Success bool   `json:"success" example:"true"`
	User    *User  `json:"user,omitempty"`
	Error   string `json:"error,omitempty" example:""`
}

// RowErrorResponse describes one rejected row from an upload
// @Description Row-level ingestion error
type RowErrorResponse struct {
	Row     int    `json:"row" example:"2"`                           // 1-based data row number
	Message string `json:"message" example:"Missing required fields"` // Why the row was rejected
}

// IngestResponse represents the result of an email upload
// @Description Email upload result payload
type IngestResponse struct {
	Success       bool               `json:"success" example:"true"`
	InsertedCount int                `json:"inserted_count" example:"42"` // Emails stored (duplicates skipped)
	RowErrors     []RowErrorResponse `json:"row_errors"`                  // Rejected rows
	Error         string             `json:"error,omitempty" example:""`
}

// ProcessEmailsRequest represents a batch analysis trigger
// @Description Batch analysis trigger payload
type ProcessEmailsRequest struct {
	UserID string `json:"user_id" example:"a2f1c9e4-..."` // Owner of the emails to analyze
}

// ProcessEmailsResponse represents the result of a batch analysis run
// @Description Batch analysis result payload
type ProcessEmailsResponse struct {
	Success  bool   `json:"success" example:"true"`
	Message  string `json:"message" example:"All pending emails processed"`
	Enqueued int    `json:"enqueued" example:"12"` // Emails submitted to the queue
	Error    string `json:"error,omitempty" example:""`
}

// AnalyzeRequest represents an ad-hoc single-email analysis request
// @Description Ad-hoc analysis payload
type AnalyzeRequest struct {
	Sender     string    `json:"sender" example:"customer@example.com"`
	Subject    string    `json:"subject" example:"Order never arrived"`
	Body       string    `json:"body" example:"I ordered two weeks ago and..."`
	ReceivedAt time.Time `json:"received_at" example:"2023-01-01T00:00:00Z"`
}

// EmailListResponse represents a filtered, paginated listing of analyzed emails
// @Description Analyzed email listing payload
type EmailListResponse struct {
	Success    bool            `json:"success" example:"true"`
	Count      int             `json:"count" example:"57"` // Total matches before pagination
	Page       int             `json:"page" example:"1"`
	Limit      int             `json:"limit" example:"10"`
	TotalPages int             `json:"total_pages" example:"6"`
	Emails     []AnalyzedEmail `json:"emails"`
	Error      string          `json:"error,omitempty" example:""`
}

// DraftListResponse represents the draft history of an email
// @Description Draft history payload
type DraftListResponse struct {
	Success bool            `json:"success" example:"true"`
	Drafts  []DraftResponse `json:"drafts"`
	Error   string          `json:"error,omitempty" example:""`
}

// SendDraftResponse represents the result of sending a draft reply
// @Description Draft send result payload
type SendDraftResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Draft sent"`
	Error   string `json:"error,omitempty" example:""`
}

// DashboardResponse wraps dashboard aggregates
// @Description Dashboard aggregates payload
type DashboardResponse struct {
	Success bool           `json:"success" example:"true"`
	Data    *DashboardData `json:"data,omitempty"`
	Error   string         `json:"error,omitempty" example:""`
}
