// Package analyzer calls the external content-analysis service with a fixed
// structured-output contract and parses the result into a typed report.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mailsift/internal/config"
	"mailsift/internal/models"

	"github.com/sashabaranov/go-openai"
)

// instruction is the fixed analysis instruction appended to the serialized email
const instruction = "Analyze the provided support email based on the given schema, " +
	"performing sentiment analysis, priority assessment, information extraction, " +
	"and generating a context-aware auto-response."

// Client wraps the OpenAI client for email analysis requests
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// New creates an analyzer client from application configuration
func New(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("no analyzer provider configured: set OPENAI_API_KEY")
	}

	model := cfg.AnalyzerModel
	if model == "" {
		model = string(openai.GPT4oMini)
	}

	return &Client{
		api:     openai.NewClient(cfg.OpenAIKey),
		model:   model,
		timeout: time.Duration(cfg.AnalyzerTimeout) * time.Second,
	}, nil
}

// analysisPayload is the email content serialized into the request
type analysisPayload struct {
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// Analyze sends one email to the analysis service and returns the parsed
// report. The request is bounded by the configured timeout so a hung call
// fails the individual job instead of wedging the queue.
func (c *Client) Analyze(ctx context.Context, email models.Email) (*Report, error) {
	payload, err := json.Marshal(analysisPayload{
		Sender:     email.Sender,
		Subject:    email.Subject,
		Body:       email.Body,
		ReceivedAt: email.ReceivedAt,
	})
	if err != nil {
		return nil, &Error{Op: "request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s %s", payload, instruction),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        "email_analysis_report",
				Description: "Detailed email analysis report for support-related emails",
				Schema:      reportSchema(),
			},
		},
	})
	if err != nil {
		return nil, &Error{Op: "request", Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Op: "request", Err: errors.New("empty completion response")}
	}

	var envelope reportEnvelope
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &envelope); err != nil {
		return nil, &Error{Op: "decode", Err: err}
	}
	if envelope.Report == nil {
		return nil, &Error{Op: "schema", Err: errors.New(`missing required section "email_analysis_report"`)}
	}
	if err := envelope.Report.Validate(); err != nil {
		return nil, err
	}

	return envelope.Report, nil
}
