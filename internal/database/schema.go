package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// postgresSchema is the application DDL for PostgreSQL. The unique index on
// emails is the duplicate-skip key for bulk imports: byte-identical rows for
// the same user collapse into one stored email.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS emails (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id),
		sender VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		received_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT emails_unique_import UNIQUE (user_id, sender, subject, body, received_at)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_emails_user_id ON emails(user_id)`,
	`CREATE TABLE IF NOT EXISTS email_meta (
		id SERIAL PRIMARY KEY,
		email_id VARCHAR(36) NOT NULL UNIQUE REFERENCES emails(id),
		sentiment VARCHAR(50) NOT NULL,
		emotional_score DOUBLE PRECISION NOT NULL,
		emotional_indicators TEXT NOT NULL,
		sentiment_assessment TEXT NOT NULL,
		priority VARCHAR(50) NOT NULL,
		urgency_indicators TEXT NOT NULL,
		priority_assessment TEXT NOT NULL,
		keywords TEXT NOT NULL,
		contacts TEXT NOT NULL,
		customer_requirements TEXT NOT NULL,
		product_mentions TEXT NOT NULL,
		issue_summary TEXT NOT NULL,
		category VARCHAR(100) NOT NULL,
		processing_priority INT NOT NULL,
		overall_summary TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_email_meta_priority ON email_meta(priority)`,
	`CREATE INDEX IF NOT EXISTS idx_email_meta_category ON email_meta(category)`,
	`CREATE TABLE IF NOT EXISTS ai_responses (
		id SERIAL PRIMARY KEY,
		email_id VARCHAR(36) NOT NULL REFERENCES emails(id),
		draft TEXT NOT NULL,
		tone VARCHAR(255) NOT NULL,
		key_references TEXT NOT NULL,
		is_ready BOOLEAN NOT NULL,
		status VARCHAR(20) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ai_responses_email_id ON ai_responses(email_id)`,
}

// mysqlSchema is the application DDL for MySQL. Differences from Postgres:
// indexes are declared inline (MySQL has no CREATE INDEX IF NOT EXISTS), and
// InnoDB cannot put a full TEXT column in a unique key, so the duplicate-skip
// key uses a stored SHA-256 of the body instead of the body itself.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS emails (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		sender VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		body_sha CHAR(64) AS (SHA2(body, 256)) STORED,
		received_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT emails_unique_import UNIQUE (user_id, sender, subject, body_sha, received_at),
		INDEX idx_emails_user_id (user_id),
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS email_meta (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email_id VARCHAR(36) NOT NULL UNIQUE,
		sentiment VARCHAR(50) NOT NULL,
		emotional_score DOUBLE NOT NULL,
		emotional_indicators TEXT NOT NULL,
		sentiment_assessment TEXT NOT NULL,
		priority VARCHAR(50) NOT NULL,
		urgency_indicators TEXT NOT NULL,
		priority_assessment TEXT NOT NULL,
		keywords TEXT NOT NULL,
		contacts TEXT NOT NULL,
		customer_requirements TEXT NOT NULL,
		product_mentions TEXT NOT NULL,
		issue_summary TEXT NOT NULL,
		category VARCHAR(100) NOT NULL,
		processing_priority INT NOT NULL,
		overall_summary TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_email_meta_priority (priority),
		INDEX idx_email_meta_category (category),
		FOREIGN KEY (email_id) REFERENCES emails(id)
	)`,
	`CREATE TABLE IF NOT EXISTS ai_responses (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email_id VARCHAR(36) NOT NULL,
		draft TEXT NOT NULL,
		tone VARCHAR(255) NOT NULL,
		key_references TEXT NOT NULL,
		is_ready BOOLEAN NOT NULL,
		status VARCHAR(20) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_ai_responses_email_id (email_id),
		FOREIGN KEY (email_id) REFERENCES emails(id)
	)`,
}

// EnsureSchema creates the application tables if they don't exist, using the
// DDL dialect matching the connection's driver.
func EnsureSchema(db *sqlx.DB) error {
	queries := postgresSchema
	if db.DriverName() == DriverMySQL {
		queries = mysqlSchema
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}
