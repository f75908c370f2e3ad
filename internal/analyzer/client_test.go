package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mailsift/internal/config"
	"mailsift/internal/models"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points the analyzer at a stub completion endpoint
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"

	client := &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   string(openai.GPT4oMini),
		timeout: 5 * time.Second,
	}
	return client, server.Close
}

// completionWith wraps report JSON in a chat completion response body
func completionWith(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	})
	return string(body)
}

const validReportJSON = `{
	"email_analysis_report": {
		"sentiment_analysis": {
			"sentiment": "Negative",
			"emotional_score": 0.85,
			"emotional_indicators": ["very disappointed", "unacceptable"],
			"assessment": "Strong frustration; handle with care."
		},
		"priority_assessment": {
			"priority": "Urgent",
			"urgency_indicators": ["immediately", "critical"],
			"assessment": "Customer demands immediate resolution."
		},
		"information_extraction": {
			"contact_details": {
				"phone_number": "+1-555-0100",
				"alternate_email": null,
				"other_contacts": ["@frustrated_customer"]
			},
			"customer_requirements": ["replacement unit"],
			"sentiment_indicators": ["disappointed"],
			"metadata": {
				"product_mentions": ["Sifter Pro"],
				"issue_summary": "Device stopped working after two days."
			}
		},
		"auto_response_generation": {
			"response_text": "We sincerely apologize...",
			"tone_adjustment": "empathetic",
			"key_references": ["Sifter Pro", "replacement"],
			"is_ready_to_send": true
		},
		"overall_categorization": {
			"category": "Support Query",
			"processing_priority": 1,
			"summary": "Urgent replacement request for a defective device."
		}
	}
}`

func testEmail() models.Email {
	return models.Email{
		ID:         "e1",
		UserID:     "u1",
		Sender:     "customer@example.com",
		Subject:    "Broken device",
		Body:       "My Sifter Pro stopped working. Call me at +1-555-0100 immediately.",
		ReceivedAt: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	client, err := New(&config.Config{})
	assert.Nil(t, client)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestAnalyze_ParsesConformantResponse(t *testing.T) {
	client, closeServer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionWith(validReportJSON))
	})
	defer closeServer()

	report, err := client.Analyze(context.Background(), testEmail())
	require.NoError(t, err)

	assert.Equal(t, "Negative", report.SentimentAnalysis.Sentiment)
	assert.InDelta(t, 0.85, report.SentimentAnalysis.EmotionalScore, 0.0001)
	assert.Equal(t, "Urgent", report.PriorityAssessment.Priority)
	require.NotNil(t, report.InformationExtraction.ContactDetails.PhoneNumber)
	assert.Equal(t, "+1-555-0100", *report.InformationExtraction.ContactDetails.PhoneNumber)
	assert.Nil(t, report.InformationExtraction.ContactDetails.AlternateEmail)
	assert.True(t, report.AutoResponse.IsReadyToSend)
	assert.Equal(t, 1, report.Categorization.ProcessingPriority)
}

func TestAnalyze_MissingRequiredSection(t *testing.T) {
	// priority_assessment dropped from an otherwise valid report
	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(validReportJSON), &doc))
	delete(doc["email_analysis_report"], "priority_assessment")
	trimmed, err := json.Marshal(doc)
	require.NoError(t, err)

	client, closeServer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionWith(string(trimmed)))
	})
	defer closeServer()

	_, err = client.Analyze(context.Background(), testEmail())
	require.Error(t, err)

	var analyzerErr *Error
	require.ErrorAs(t, err, &analyzerErr)
	assert.Equal(t, "schema", analyzerErr.Op)
	assert.Contains(t, err.Error(), "priority_assessment")
}

func TestAnalyze_MissingEnvelope(t *testing.T) {
	client, closeServer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionWith(`{"something_else": {}}`))
	})
	defer closeServer()

	_, err := client.Analyze(context.Background(), testEmail())
	require.Error(t, err)

	var analyzerErr *Error
	require.ErrorAs(t, err, &analyzerErr)
	assert.Equal(t, "schema", analyzerErr.Op)
}

func TestAnalyze_UndecodableContent(t *testing.T) {
	client, closeServer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionWith("I'm sorry, I can't produce JSON today"))
	})
	defer closeServer()

	_, err := client.Analyze(context.Background(), testEmail())
	require.Error(t, err)

	var analyzerErr *Error
	require.ErrorAs(t, err, &analyzerErr)
	assert.Equal(t, "decode", analyzerErr.Op)
}

func TestAnalyze_ServiceFailure(t *testing.T) {
	client, closeServer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	})
	defer closeServer()

	_, err := client.Analyze(context.Background(), testEmail())
	require.Error(t, err)

	var analyzerErr *Error
	require.ErrorAs(t, err, &analyzerErr)
	assert.Equal(t, "request", analyzerErr.Op)
}

func TestAnalyze_TimeoutBoundsHungCall(t *testing.T) {
	client, closeServer := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		fmt.Fprint(w, completionWith(validReportJSON))
	})
	defer closeServer()
	client.timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := client.Analyze(context.Background(), testEmail())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "the timeout must fail the call instead of hanging")

	var analyzerErr *Error
	require.ErrorAs(t, err, &analyzerErr)
	assert.Equal(t, "request", analyzerErr.Op)
}

func TestReport_Contacts(t *testing.T) {
	phone := "+1-555-0100"
	empty := ""

	tests := []struct {
		name     string
		details  ContactDetails
		expected []string
	}{
		{
			name: "flattens and deduplicates",
			details: ContactDetails{
				PhoneNumber:    &phone,
				AlternateEmail: &phone, // duplicate value
				OtherContacts:  []string{"@handle", "+1-555-0100", "@handle"},
			},
			expected: []string{"+1-555-0100", "@handle"},
		},
		{
			name: "drops nulls and empties",
			details: ContactDetails{
				AlternateEmail: &empty,
				OtherContacts:  []string{"", "@only"},
			},
			expected: []string{"@only"},
		},
		{
			name:     "all absent",
			details:  ContactDetails{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{InformationExtraction: &InformationExtraction{ContactDetails: tt.details}}
			assert.Equal(t, tt.expected, report.Contacts())
		})
	}
}

func TestReport_DraftStatus(t *testing.T) {
	ready := &Report{AutoResponse: &AutoResponse{IsReadyToSend: true}}
	assert.Equal(t, "ready", ready.DraftStatus())

	pending := &Report{AutoResponse: &AutoResponse{IsReadyToSend: false}}
	assert.Equal(t, "pending", pending.DraftStatus())
}
