package tools

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lexdraft/lexdraft/internal/domain"
	"github.com/lexdraft/lexdraft/internal/store"
)

// Dispatcher executes named tool calls against a session's document state.
// Every path returns a structured payload; nothing here can fail.
type Dispatcher struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher over the given store.
func NewDispatcher(s *store.Store, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{store: s, logger: logger}
}

// Execute runs one tool call for a session and returns its result payload.
// Arguments arrive already decoded; defaults are applied per field here.
func (d *Dispatcher) Execute(sessionID, name string, args map[string]any) map[string]any {
	d.logger.Debug("dispatching tool call",
		zap.String("session_id", sessionID),
		zap.String("function", name),
	)

	switch name {
	case FuncExtractInformation:
		return d.extractInformation(sessionID, args)
	case FuncGenerateDocument:
		return d.generateDocument(sessionID, args)
	case FuncApplyEdits:
		return d.applyEdits(sessionID, args)
	}

	d.logger.Warn("unknown tool call",
		zap.String("session_id", sessionID),
		zap.String("function", name),
	)
	return map[string]any{
		"status":  "error",
		"message": fmt.Sprintf("Unknown function: %s", name),
	}
}

func (d *Dispatcher) extractInformation(sessionID string, args map[string]any) map[string]any {
	documentType := stringArg(args, "document_type", "")
	extracted := mapArg(args, "extracted_data")

	doc, ok := d.store.Document(sessionID)
	if !ok {
		doc = &domain.Document{Version: 1}
	}
	doc.Type = documentType
	doc.ExtractedData = extracted
	d.store.SaveDocument(sessionID, doc)

	return map[string]any{
		"status":            "success",
		"message":           "Information extracted and stored",
		"extracted_data":    extracted,
		"document_type":     documentType,
		"ready_to_generate": boolArg(args, "ready_to_generate", false),
		"missing_fields":    stringsArg(args, "missing_fields"),
	}
}

func (d *Dispatcher) generateDocument(sessionID string, args map[string]any) map[string]any {
	documentType := stringArg(args, "document_type", domain.DocTypeNDA)
	data := mapArg(args, "document_data")

	d.store.SaveDocument(sessionID, &domain.Document{
		Type:    documentType,
		Data:    data,
		Content: Template(documentType),
		Version: 1,
		History: []domain.Edit{},
	})

	return map[string]any{
		"status":             "success",
		"message":            fmt.Sprintf("Generating %s", titleWords(documentType)),
		"document_type":      documentType,
		"document_data":      data,
		"template_available": true,
	}
}

func (d *Dispatcher) applyEdits(sessionID string, args map[string]any) map[string]any {
	editType := stringArg(args, "edit_type", "")
	targetSection := stringArg(args, "target_section", "")
	originalValue := stringArg(args, "original_value", "")
	newValue := stringArg(args, "new_value", "")
	reason := stringArg(args, "reason", "")

	// Editing without a document is accepted as a silent no-op; the edit is
	// still acknowledged so the model can keep the conversation coherent.
	if doc, ok := d.store.Document(sessionID); ok {
		doc.History = append(doc.History, domain.Edit{
			EditType:      editType,
			TargetSection: targetSection,
			OriginalValue: originalValue,
			NewValue:      newValue,
			Reason:        reason,
			Timestamp:     time.Now(),
		})
		doc.Version++
		d.store.SaveDocument(sessionID, doc)
	}

	return map[string]any{
		"status":         "success",
		"message":        fmt.Sprintf("Applied %s to %s", editType, targetSection),
		"edit_type":      editType,
		"target_section": targetSection,
		"original_value": originalValue,
		"new_value":      newValue,
		"reason":         reason,
	}
}

// titleWords turns "employment_agreement" into "Employment Agreement".
func titleWords(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func stringArg(args map[string]any, key, def string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return def
}

func boolArg(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func mapArg(args map[string]any, key string) map[string]any {
	if v, ok := args[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func stringsArg(args map[string]any, key string) []string {
	out := []string{}
	raw, ok := args[key].([]any)
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
