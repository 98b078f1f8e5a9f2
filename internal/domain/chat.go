package domain

import "encoding/json"

// ChatRequest is the body of a chat message request.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message" binding:"required"`
}

// Stream event types emitted to the client.
const (
	EventContent    = "content"
	EventToolCall   = "tool_call"
	EventToolResult = "tool_result"
	EventDone       = "done"
	EventError      = "error"
)

// StreamEvent is one record in the SSE stream. It is a tagged variant: only
// the fields belonging to Type are serialized.
type StreamEvent struct {
	Type      string
	Content   string
	Function  string
	Arguments map[string]any
	Result    map[string]any
	Error     string
}

// ContentEvent carries a fragment of assistant text.
func ContentEvent(content string) StreamEvent {
	return StreamEvent{Type: EventContent, Content: content}
}

// ToolCallEvent announces a tool invocation with its decoded arguments.
func ToolCallEvent(function string, arguments map[string]any) StreamEvent {
	return StreamEvent{Type: EventToolCall, Function: function, Arguments: arguments}
}

// ToolResultEvent carries the structured result of a tool invocation.
func ToolResultEvent(function string, result map[string]any) StreamEvent {
	return StreamEvent{Type: EventToolResult, Function: function, Result: result}
}

// DoneEvent terminates a successful stream.
func DoneEvent() StreamEvent {
	return StreamEvent{Type: EventDone}
}

// ErrorEvent terminates a failed stream with a human-readable message.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: EventError, Error: message}
}

// MarshalJSON serializes only the fields belonging to the event's type.
// Arguments and result objects are always present on their event types, even
// when empty.
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventContent:
		return json.Marshal(struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}{e.Type, e.Content})
	case EventToolCall:
		args := e.Arguments
		if args == nil {
			args = map[string]any{}
		}
		return json.Marshal(struct {
			Type      string         `json:"type"`
			Function  string         `json:"function"`
			Arguments map[string]any `json:"arguments"`
		}{e.Type, e.Function, args})
	case EventToolResult:
		result := e.Result
		if result == nil {
			result = map[string]any{}
		}
		return json.Marshal(struct {
			Type     string         `json:"type"`
			Function string         `json:"function"`
			Result   map[string]any `json:"result"`
		}{e.Type, e.Function, result})
	case EventError:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Error string `json:"error"`
		}{e.Type, e.Error})
	default:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{e.Type})
	}
}
