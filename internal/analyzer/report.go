package analyzer

import "fmt"

// Error is an analyzer failure: a transport/service error, an undecodable
// payload, or a response missing a required schema section.
type Error struct {
	Op  string // "request", "decode" or "schema"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("analyzer %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Report is the structured analysis of one email, as returned by the
// external analysis service. The five sections are required by the declared
// schema; optional leaf fields (contact details) may be absent or null.
type Report struct {
	SentimentAnalysis     *SentimentAnalysis     `json:"sentiment_analysis"`
	PriorityAssessment    *PriorityAssessment    `json:"priority_assessment"`
	InformationExtraction *InformationExtraction `json:"information_extraction"`
	AutoResponse          *AutoResponse          `json:"auto_response_generation"`
	Categorization        *Categorization        `json:"overall_categorization"`
}

// SentimentAnalysis describes the email's sentiment and emotional tone
type SentimentAnalysis struct {
	Sentiment           string   `json:"sentiment"`
	EmotionalScore      float64  `json:"emotional_score"`
	EmotionalIndicators []string `json:"emotional_indicators"`
	Assessment          string   `json:"assessment"`
}

// PriorityAssessment evaluates the email's urgency
type PriorityAssessment struct {
	Priority          string   `json:"priority"`
	UrgencyIndicators []string `json:"urgency_indicators"`
	Assessment        string   `json:"assessment"`
}

// ContactDetails holds contact information extracted from the email body.
// Phone and alternate email are nullable in the service contract.
type ContactDetails struct {
	PhoneNumber    *string  `json:"phone_number"`
	AlternateEmail *string  `json:"alternate_email"`
	OtherContacts  []string `json:"other_contacts"`
}

// ExtractionMetadata carries extra context for support teams
type ExtractionMetadata struct {
	ProductMentions []string `json:"product_mentions"`
	IssueSummary    string   `json:"issue_summary"`
}

// InformationExtraction holds key facts pulled out of the email
type InformationExtraction struct {
	ContactDetails       ContactDetails     `json:"contact_details"`
	CustomerRequirements []string           `json:"customer_requirements"`
	SentimentIndicators  []string           `json:"sentiment_indicators"`
	Metadata             ExtractionMetadata `json:"metadata"`
}

// AutoResponse is the generated draft reply
type AutoResponse struct {
	ResponseText   string   `json:"response_text"`
	ToneAdjustment string   `json:"tone_adjustment"`
	KeyReferences  []string `json:"key_references"`
	IsReadyToSend  bool     `json:"is_ready_to_send"`
}

// Categorization is the overall category and queuing priority
type Categorization struct {
	Category           string `json:"category"`
	ProcessingPriority int    `json:"processing_priority"` // lower is more urgent
	Summary            string `json:"summary"`
}

// reportEnvelope matches the top-level wrapper object of the service response
type reportEnvelope struct {
	Report *Report `json:"email_analysis_report"`
}

// Validate checks that every required section of the schema is present
func (r *Report) Validate() error {
	missing := ""
	switch {
	case r.SentimentAnalysis == nil:
		missing = "sentiment_analysis"
	case r.PriorityAssessment == nil:
		missing = "priority_assessment"
	case r.InformationExtraction == nil:
		missing = "information_extraction"
	case r.AutoResponse == nil:
		missing = "auto_response_generation"
	case r.Categorization == nil:
		missing = "overall_categorization"
	}
	if missing != "" {
		return &Error{Op: "schema", Err: fmt.Errorf("missing required section %q", missing)}
	}
	return nil
}

// Contacts flattens phone, alternate email and other contacts into a single
// deduplicated list with nulls and empty values dropped.
func (r *Report) Contacts() []string {
	details := r.InformationExtraction.ContactDetails

	candidates := make([]string, 0, len(details.OtherContacts)+2)
	if details.PhoneNumber != nil {
		candidates = append(candidates, *details.PhoneNumber)
	}
	if details.AlternateEmail != nil {
		candidates = append(candidates, *details.AlternateEmail)
	}
	candidates = append(candidates, details.OtherContacts...)

	seen := make(map[string]struct{}, len(candidates))
	contacts := make([]string, 0, len(candidates))
	for _, contact := range candidates {
		if contact == "" {
			continue
		}
		if _, ok := seen[contact]; ok {
			continue
		}
		seen[contact] = struct{}{}
		contacts = append(contacts, contact)
	}
	return contacts
}

// DraftStatus derives the stored draft status from the readiness flag
func (r *Report) DraftStatus() string {
	if r.AutoResponse.IsReadyToSend {
		return "ready"
	}
	return "pending"
}
