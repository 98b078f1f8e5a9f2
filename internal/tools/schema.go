// Package tools defines the functions the model may call and executes them
// against a session's document state.
package tools

import (
	"github.com/lexdraft/lexdraft/internal/domain"
	"github.com/lexdraft/lexdraft/internal/llm"
)

// Function names the dispatcher understands.
const (
	FuncExtractInformation = "extract_information"
	FuncGenerateDocument   = "generate_document"
	FuncApplyEdits         = "apply_edits"
)

var templates = map[string]string{
	domain.DocTypeNDA:                  "Non-Disclosure Agreement Template",
	domain.DocTypeEmploymentAgreement:  "Employment Agreement Template",
	domain.DocTypeBoardResolution:      "Board Resolution Template",
	domain.DocTypeServiceAgreement:     "Service Agreement Template",
	domain.DocTypeConsultingAgreement:  "Consulting Agreement Template",
	domain.DocTypePartnershipAgreement: "Partnership Agreement Template",
}

// Template resolves the placeholder template identifier for a document type.
// Unknown types fall back to a generic placeholder.
func Template(documentType string) string {
	if t, ok := templates[documentType]; ok {
		return t
	}
	return "Legal Document Template"
}

var documentTypeEnum = []string{
	domain.DocTypeNDA,
	domain.DocTypeEmploymentAgreement,
	domain.DocTypeBoardResolution,
	domain.DocTypeServiceAgreement,
	domain.DocTypeConsultingAgreement,
	domain.DocTypePartnershipAgreement,
}

var partiesSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":    map[string]any{"type": "string"},
			"role":    map[string]any{"type": "string"},
			"address": map[string]any{"type": "string"},
			"entity_type": map[string]any{
				"type": "string",
				"enum": []string{"individual", "corporation", "llc", "partnership", "other"},
			},
		},
	},
	"description": "Parties involved in the document",
}

// Definitions returns the fixed tool schema set sent with every upstream
// call. Schemas mirror the shapes the dispatcher reads.
func Definitions() []llm.Tool {
	return []llm.Tool{
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        FuncExtractInformation,
				Description: "Extract and structure information from the conversation for document generation. Call this whenever the user provides new information that should be captured.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"document_type": map[string]any{
							"type":        "string",
							"enum":        append(append([]string{}, documentTypeEnum...), "other"),
							"description": "The type of legal document being created",
						},
						"extracted_data": map[string]any{
							"type":        "object",
							"description": "Structured data extracted from conversation",
							"properties": map[string]any{
								"parties": partiesSchema,
								"dates": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"effective_date": map[string]any{"type": "string"},
										"end_date":       map[string]any{"type": "string"},
										"duration":       map[string]any{"type": "string"},
									},
									"description": "Relevant dates and timeframes",
								},
								"terms": map[string]any{
									"type":        "object",
									"description": "Document-specific terms",
								},
								"additional_provisions": map[string]any{
									"type":        "array",
									"items":       map[string]any{"type": "string"},
									"description": "Any additional clauses or provisions requested",
								},
							},
						},
						"missing_fields": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "List of required fields still needed from the user",
						},
						"ready_to_generate": map[string]any{
							"type":        "boolean",
							"description": "Whether all required information has been collected",
						},
					},
					"required": []string{"document_type", "extracted_data"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        FuncGenerateDocument,
				Description: "Generate a complete legal document based on extracted information. Only call this when all required information has been collected and confirmed with the user.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"document_type": map[string]any{
							"type":        "string",
							"enum":        documentTypeEnum,
							"description": "The type of legal document to generate",
						},
						"document_data": map[string]any{
							"type":        "object",
							"description": "All structured data for document generation",
							"properties": map[string]any{
								"title":          map[string]any{"type": "string"},
								"parties":        partiesSchema,
								"effective_date": map[string]any{"type": "string"},
								"terms":          map[string]any{"type": "object"},
								"provisions":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
								"jurisdiction":   map[string]any{"type": "string"},
							},
						},
						"format": map[string]any{
							"type":        "string",
							"enum":        []string{"formal", "simple"},
							"description": "Document formatting style",
						},
					},
					"required": []string{"document_type", "document_data"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        FuncApplyEdits,
				Description: "Apply edits to an existing document based on user request. Call this when the user wants to modify, add, or remove content from a generated document.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"edit_type": map[string]any{
							"type":        "string",
							"enum":        []string{"modify", "add", "remove", "replace"},
							"description": "The type of edit being made",
						},
						"target_section": map[string]any{
							"type":        "string",
							"description": "The section or clause being edited",
						},
						"original_value": map[string]any{
							"type":        "string",
							"description": "The current/original text or value being changed",
						},
						"new_value": map[string]any{
							"type":        "string",
							"description": "The new text or value to replace the original",
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "Brief explanation of why this edit is being made",
						},
						"affected_clauses": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "List of other clauses that may be affected by this change",
						},
					},
					"required": []string{"edit_type", "target_section", "new_value"},
				},
			},
		},
	}
}
