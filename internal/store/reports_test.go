package store

import (
	"context"
	"database/sql"
	"testing"

	"mailsift/internal/analyzer"
	"mailsift/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	return newMockStoreWithDriver(t, "sqlmock")
}

// newMockStoreWithDriver pins the driver name so dialect-specific SQL paths
// can be exercised.
func newMockStoreWithDriver(t *testing.T, driver string) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := sqlx.NewDb(mockDB, driver)
	return New(db, zerolog.Nop()), mock, func() { _ = mockDB.Close() }
}

func sampleReport() *analyzer.Report {
	phone := "+1-555-0100"
	return &analyzer.Report{
		SentimentAnalysis: &analyzer.SentimentAnalysis{
			Sentiment:           "Negative",
			EmotionalScore:      0.82,
			EmotionalIndicators: []string{"furious", "unacceptable"},
			Assessment:          "Customer is upset and needs fast handling",
		},
		PriorityAssessment: &analyzer.PriorityAssessment{
			Priority:          "Urgent",
			UrgencyIndicators: []string{"immediately"},
			Assessment:        "Immediate action requested",
		},
		InformationExtraction: &analyzer.InformationExtraction{
			ContactDetails: analyzer.ContactDetails{
				PhoneNumber:   &phone,
				OtherContacts: []string{"@customer"},
			},
			CustomerRequirements: []string{"refund"},
			SentimentIndicators:  []string{"broken"},
			Metadata: analyzer.ExtractionMetadata{
				ProductMentions: []string{"Sifter Pro"},
				IssueSummary:    "Product arrived broken",
			},
		},
		AutoResponse: &analyzer.AutoResponse{
			ResponseText:   "We are sorry to hear that...",
			ToneAdjustment: "empathetic",
			KeyReferences:  []string{"Sifter Pro", "refund"},
			IsReadyToSend:  true,
		},
		Categorization: &analyzer.Categorization{
			Category:           "Support Query",
			ProcessingPriority: 1,
			Summary:            "Urgent refund request for a damaged product",
		},
	}
}

func TestSaveAnalysis_UpsertsReportAndAppendsDraft(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO email_meta").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ai_responses").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.SaveAnalysis(context.Background(), "email-1", sampleReport())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnalysis_MySQLUpsertDialect(t *testing.T) {
	s, mock, closeDB := newMockStoreWithDriver(t, database.DriverMySQL)
	defer closeDB()

	// MySQL has no ON CONFLICT; the upsert must use ON DUPLICATE KEY UPDATE
	mock.ExpectBegin()
	mock.ExpectExec("ON DUPLICATE KEY UPDATE").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ai_responses").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.SaveAnalysis(context.Background(), "email-1", sampleReport())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnalysis_ReanalysisAppendsExactlyOneDraftPerRun(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	// Two runs for the same email: the report upsert overwrites in place,
	// the draft insert appends one row each time.
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO email_meta").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("INSERT INTO ai_responses").WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		mock.ExpectCommit()
	}

	require.NoError(t, s.SaveAnalysis(context.Background(), "email-1", sampleReport()))
	require.NoError(t, s.SaveAnalysis(context.Background(), "email-1", sampleReport()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnalysis_DraftInsertFailureRollsBack(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO email_meta").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO ai_responses").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := s.SaveAnalysis(context.Background(), "email-1", sampleReport())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert draft response")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnalysis_UpsertFailureRollsBack(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO email_meta").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := s.SaveAnalysis(context.Background(), "email-1", sampleReport())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert analysis report")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAnalysis_BeginFailure(t *testing.T) {
	s, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	err := s.SaveAnalysis(context.Background(), "email-1", sampleReport())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin analysis transaction")
}
