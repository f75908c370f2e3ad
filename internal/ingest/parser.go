// Package ingest parses uploaded tabular email files into validated records
// and bulk-inserts them with duplicate skipping.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
)

// maxFieldLength caps sender and subject values
const maxFieldLength = 255

// ErrInvalidUpload marks files rejected during parsing, before any row was
// stored. Callers use it to tell a bad upload apart from a storage failure.
var ErrInvalidUpload = errors.New("invalid upload")

// Required upload columns
const (
	columnSender   = "sender"
	columnSubject  = "subject"
	columnBody     = "body"
	columnSentDate = "sent_date"
)

// Row is one validated email record from an upload
type Row struct {
	Sender     string
	Subject    string
	Body       string
	ReceivedAt time.Time
}

// RowError reports one rejected row. Row numbers are 1-based over the data
// rows (the header row is not counted).
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ParseRows streams CSV rows, validating each independently. Invalid rows
// are collected as row errors and skipped; they never abort the rest of the
// file. A missing header or required column fails the whole parse.
func ParseRows(r io.Reader) ([]Row, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{columnSender, columnSubject, columnBody, columnSentDate} {
		if _, ok := columns[required]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []Row
	var rowErrors []RowError

	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Malformed row"})
			continue
		}

		field := func(name string) string {
			idx := columns[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		sender := field(columnSender)
		subject := field(columnSubject)
		body := field(columnBody)
		sentDate := field(columnSentDate)

		if sender == "" || subject == "" || body == "" || sentDate == "" {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Missing required fields"})
			continue
		}
		// Character counts, not bytes: the columns are VARCHAR(255)
		if utf8.RuneCountInString(sender) > maxFieldLength {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "sender exceeds 255 characters"})
			continue
		}
		if utf8.RuneCountInString(subject) > maxFieldLength {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "subject exceeds 255 characters"})
			continue
		}

		receivedAt, err := dateparse.ParseAny(sentDate)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Message: "Unrecognized sent_date"})
			continue
		}

		rows = append(rows, Row{
			Sender:     sender,
			Subject:    subject,
			Body:       body,
			ReceivedAt: receivedAt,
		})
	}

	return rows, rowErrors, nil
}
