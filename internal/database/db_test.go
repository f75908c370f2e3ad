package database

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyDatabaseURL(t *testing.T) {
	db, err := New("")
	assert.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "DATABASE_URL environment variable not set")
}

func TestEnsureSchema_MySQLDialect(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	// MySQL DDL folds every index into its CREATE TABLE statement
	db := sqlx.NewDb(mockDB, DriverMySQL)
	for i := 0; i < 4; i++ {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(db))
	assert.NoError(t, mock.ExpectationsWereMet())

	for _, stmt := range mysqlSchema {
		assert.NotContains(t, stmt, "CREATE INDEX")
		assert.NotContains(t, stmt, "SERIAL")
	}
}

func TestEnsureSchema(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantError bool
	}{
		{
			name: "all statements succeed",
			setupMock: func(mock sqlmock.Sqlmock) {
				for i := 0; i < 8; i++ {
					mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
				}
			},
			wantError: false,
		},
		{
			name: "first statement fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE").WillReturnError(sql.ErrConnDone)
			},
			wantError: true,
		},
		{
			name: "later statement fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("CREATE").WillReturnError(sql.ErrConnDone)
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()

			db := sqlx.NewDb(mockDB, "sqlmock")
			tt.setupMock(mock)

			err = EnsureSchema(db)

			if tt.wantError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "failed to create schema")
			} else {
				assert.NoError(t, err)
				assert.NoError(t, mock.ExpectationsWereMet())
			}
		})
	}
}
