package domain

import "time"

// Document types the assistant can draft.
const (
	DocTypeNDA                  = "nda"
	DocTypeEmploymentAgreement  = "employment_agreement"
	DocTypeBoardResolution      = "board_resolution"
	DocTypeServiceAgreement     = "service_agreement"
	DocTypeConsultingAgreement  = "consulting_agreement"
	DocTypePartnershipAgreement = "partnership_agreement"
)

// Document is the per-session record of one in-progress legal document
// draft. Invariant: Version == 1 + len(History).
type Document struct {
	Type          string         `json:"document_type"`
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
	Data          map[string]any `json:"document_data,omitempty"`
	Content       string         `json:"content,omitempty"`
	Version       int            `json:"version"`
	History       []Edit         `json:"history"`
}

// Edit is one applied revision in a document's history.
type Edit struct {
	EditType      string    `json:"edit_type"`
	TargetSection string    `json:"target_section"`
	OriginalValue string    `json:"original_value"`
	NewValue      string    `json:"new_value"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}
