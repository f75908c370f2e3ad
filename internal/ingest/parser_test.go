package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows_ValidFile(t *testing.T) {
	input := strings.Join([]string{
		"sender,subject,body,sent_date",
		"alice@example.com,Order issue,My order never arrived,2024-03-05T10:30:00Z",
		"bob@example.com,Question,How do I reset my password?,March 6 2024",
	}, "\n")

	rows, rowErrors, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, rows, 2)

	assert.Equal(t, "alice@example.com", rows[0].Sender)
	assert.Equal(t, 2024, rows[0].ReceivedAt.Year())
	assert.Equal(t, time.March, rows[1].ReceivedAt.Month())
	assert.Equal(t, 6, rows[1].ReceivedAt.Day())
}

func TestParseRows_InvalidRowsAreSkippedNotFatal(t *testing.T) {
	// Row 2 is missing its subject; the other rows still import
	input := strings.Join([]string{
		"sender,subject,body,sent_date",
		"alice@example.com,First,body one,2024-03-05",
		"bob@example.com,,body two,2024-03-06",
		"carol@example.com,Third,body three,2024-03-07",
	}, "\n")

	rows, rowErrors, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 2, rowErrors[0].Row)
	assert.Equal(t, "Missing required fields", rowErrors[0].Message)
}

func TestParseRows_ValidationCases(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		message string
	}{
		{
			name:    "missing sender",
			row:     ",Subject,Body,2024-03-05",
			message: "Missing required fields",
		},
		{
			name:    "missing sent_date",
			row:     "a@example.com,Subject,Body,",
			message: "Missing required fields",
		},
		{
			name:    "sender too long",
			row:     strings.Repeat("a", 250) + "@example.com,Subject,Body,2024-03-05",
			message: "sender exceeds 255 characters",
		},
		{
			name:    "subject too long",
			row:     "a@example.com," + strings.Repeat("s", 256) + ",Body,2024-03-05",
			message: "subject exceeds 255 characters",
		},
		{
			name:    "unparseable date",
			row:     "a@example.com,Subject,Body,the day after whenever",
			message: "Unrecognized sent_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "sender,subject,body,sent_date\n" + tt.row

			rows, rowErrors, err := ParseRows(strings.NewReader(input))
			require.NoError(t, err)
			assert.Empty(t, rows)
			require.Len(t, rowErrors, 1)
			assert.Equal(t, 1, rowErrors[0].Row)
			assert.Equal(t, tt.message, rowErrors[0].Message)
		})
	}
}

func TestParseRows_LengthCapCountsCharactersNotBytes(t *testing.T) {
	// 200 characters but 600 bytes: fits a VARCHAR(255) column
	multibyteSubject := strings.Repeat("ä", 200)
	input := strings.Join([]string{
		"sender,subject,body,sent_date",
		"a@example.com," + multibyteSubject + ",Body,2024-03-05",
		"a@example.com," + strings.Repeat("ä", 256) + ",Body,2024-03-06",
	}, "\n")

	rows, rowErrors, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, multibyteSubject, rows[0].Subject)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, 2, rowErrors[0].Row)
	assert.Equal(t, "subject exceeds 255 characters", rowErrors[0].Message)
}

func TestParseRows_FlexibleDateFormats(t *testing.T) {
	dates := []string{
		"2024-03-05",
		"2024-03-05 10:30:00",
		"03/05/2024",
		"March 5, 2024",
		"5 Mar 2024 10:30",
	}

	for _, date := range dates {
		t.Run(date, func(t *testing.T) {
			input := "sender,subject,body,sent_date\na@example.com,S,B," + date

			rows, rowErrors, err := ParseRows(strings.NewReader(input))
			require.NoError(t, err)
			assert.Empty(t, rowErrors)
			require.Len(t, rows, 1)
			assert.Equal(t, 2024, rows[0].ReceivedAt.Year())
		})
	}
}

func TestParseRows_MissingRequiredColumn(t *testing.T) {
	input := "sender,subject,sent_date\na@example.com,S,2024-03-05"

	_, _, err := ParseRows(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required column "body"`)
}

func TestParseRows_ReorderedHeaderColumns(t *testing.T) {
	input := strings.Join([]string{
		"sent_date,body,Sender,SUBJECT",
		"2024-03-05,the body,a@example.com,the subject",
	}, "\n")

	rows, rowErrors, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, rows, 1)
	assert.Equal(t, "a@example.com", rows[0].Sender)
	assert.Equal(t, "the subject", rows[0].Subject)
}

func TestParseRows_EmptyFile(t *testing.T) {
	_, _, err := ParseRows(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseRows_ShortRecord(t *testing.T) {
	input := strings.Join([]string{
		"sender,subject,body,sent_date",
		"a@example.com,Subject",
	}, "\n")

	rows, rowErrors, err := ParseRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, "Missing required fields", rowErrors[0].Message)
}
