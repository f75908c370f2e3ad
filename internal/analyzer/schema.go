package analyzer

import "github.com/sashabaranov/go-openai/jsonschema"

// reportSchema declares the structured-output contract for the analysis
// service: a single email_analysis_report object with five required sections.
func reportSchema() *jsonschema.Definition {
	stringArray := func(description string) jsonschema.Definition {
		return jsonschema.Definition{
			Type:        jsonschema.Array,
			Description: description,
			Items:       &jsonschema.Definition{Type: jsonschema.String},
		}
	}

	sentimentAnalysis := jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: "Analysis of the email's sentiment and emotional tone",
		Properties: map[string]jsonschema.Definition{
			"sentiment": {
				Type:        jsonschema.String,
				Description: "Overall sentiment of the email (Positive, Negative, Neutral)",
			},
			"emotional_score": {
				Type:        jsonschema.Number,
				Description: "Score indicating emotional intensity (0 to 1, higher is more emotional)",
			},
			"emotional_indicators": stringArray("Words or phrases contributing to the emotional tone"),
			"assessment": {
				Type:        jsonschema.String,
				Description: "Summary of how the sentiment impacts the email's urgency or handling",
			},
		},
		Required: []string{"sentiment", "emotional_score", "emotional_indicators", "assessment"},
	}

	priorityAssessment := jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: "Evaluation of the email's priority based on content",
		Properties: map[string]jsonschema.Definition{
			"priority": {
				Type:        jsonschema.String,
				Description: "Priority level (Urgent, Not Urgent)",
			},
			"urgency_indicators": stringArray("Keywords or phrases indicating urgency (e.g., 'immediately', 'critical')"),
			"assessment": {
				Type:        jsonschema.String,
				Description: "Summary of priority determination",
			},
		},
		Required: []string{"priority", "urgency_indicators", "assessment"},
	}

	contactDetails := jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: "Extracted contact information",
		Properties: map[string]jsonschema.Definition{
			"phone_number": {
				Type:        jsonschema.String,
				Description: "Phone number mentioned in the email (or null if none)",
			},
			"alternate_email": {
				Type:        jsonschema.String,
				Description: "Alternate email mentioned (or null if none)",
			},
			"other_contacts": stringArray("Any other contact details (e.g., social media handles)"),
		},
		// phone_number and alternate_email are nullable and deliberately
		// left out of the required list
		Required: []string{"other_contacts"},
	}

	informationExtraction := jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: "Extraction of key information from the email",
		Properties: map[string]jsonschema.Definition{
			"contact_details":       contactDetails,
			"customer_requirements": stringArray("List of customer requests or requirements"),
			"sentiment_indicators":  stringArray("Specific positive/negative words or phrases"),
			"metadata": {
				Type:        jsonschema.Object,
				Description: "Additional metadata to help support teams",
				Properties: map[string]jsonschema.Definition{
					"product_mentions": stringArray("Products or services mentioned in the email"),
					"issue_summary": {
						Type:        jsonschema.String,
						Description: "Brief summary of the main issue or query",
					},
				},
				Required: []string{"product_mentions", "issue_summary"},
			},
		},
		Required: []string{"contact_details", "customer_requirements", "sentiment_indicators", "metadata"},
	}

	autoResponse := jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: "Generated draft response for the email",
		Properties: map[string]jsonschema.Definition{
			"response_text": {
				Type:        jsonschema.String,
				Description: "Full text of the professional, context-aware draft response",
			},
			"tone_adjustment": {
				Type:        jsonschema.String,
				Description: "Description of tone used (e.g., empathetic if frustrated, friendly otherwise)",
			},
			"key_references": stringArray("Key elements referenced in the response (e.g., product names, acknowledgments)"),
			"is_ready_to_send": {
				Type:        jsonschema.Boolean,
				Description: "Whether the response is complete and ready for review/sending",
			},
		},
		Required: []string{"response_text", "tone_adjustment", "key_references", "is_ready_to_send"},
	}

	categorization := jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: "Overall categorization and summary",
		Properties: map[string]jsonschema.Definition{
			"category": {
				Type:        jsonschema.String,
				Description: "Broad category of the email (e.g., Support Query, Help Request)",
			},
			"processing_priority": {
				Type:        jsonschema.Number,
				Description: "Numerical priority score for queuing (1,2,3, lower is more urgent)",
			},
			"summary": {
				Type:        jsonschema.String,
				Description: "Concise summary of the entire analysis",
			},
		},
		Required: []string{"category", "processing_priority", "summary"},
	}

	return &jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: "Detailed email analysis report for support-related emails",
		Properties: map[string]jsonschema.Definition{
			"email_analysis_report": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"sentiment_analysis":       sentimentAnalysis,
					"priority_assessment":      priorityAssessment,
					"information_extraction":   informationExtraction,
					"auto_response_generation": autoResponse,
					"overall_categorization":   categorization,
				},
				Required: []string{
					"sentiment_analysis",
					"priority_assessment",
					"information_extraction",
					"auto_response_generation",
					"overall_categorization",
				},
			},
		},
		Required: []string{"email_analysis_report"},
	}
}
