package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lexdraft/lexdraft/internal/config"
	"github.com/lexdraft/lexdraft/internal/domain"
	"github.com/lexdraft/lexdraft/internal/llm"
	"github.com/lexdraft/lexdraft/internal/store"
	"github.com/lexdraft/lexdraft/internal/tools"
)

// scriptedStreamer replays one chunk sequence per upstream call.
type scriptedStreamer struct {
	rounds   [][]llm.StreamChunk
	err      error
	requests []int // transcript length at each call
}

func (s *scriptedStreamer) CreateChatCompletionStream(ctx context.Context, req *llm.ChatCompletionRequest, callback llm.StreamCallback) (*llm.Usage, error) {
	if s.err != nil {
		return nil, s.err
	}
	call := len(s.requests)
	s.requests = append(s.requests, len(req.Messages))
	if call >= len(s.rounds) {
		return nil, errors.New("no scripted round left")
	}
	for i := range s.rounds[call] {
		if err := callback(&s.rounds[call][i]); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func contentChunk(text string) llm.StreamChunk {
	return llm.StreamChunk{Choices: []llm.Choice{{Delta: &llm.ChatMessage{Content: text}}}}
}

func toolChunk(id, name, args string) llm.StreamChunk {
	return llm.StreamChunk{Choices: []llm.Choice{{Delta: &llm.ChatMessage{
		ToolCalls: []llm.ToolCall{{ID: id, Function: llm.ToolCallFunction{Name: name, Arguments: args}}},
	}}}}
}

func finishChunk(reason string) llm.StreamChunk {
	return llm.StreamChunk{Choices: []llm.Choice{{FinishReason: reason}}}
}

func newService(streamer Streamer) (*ChatService, *store.Store) {
	cfg := &config.Config{LLM: config.LLMConfig{Model: "gpt-4o"}}
	s := store.New(tools.SystemPrompt)
	dispatcher := tools.NewDispatcher(s, zap.NewNop())
	return NewChatService(cfg, s, streamer, dispatcher, zap.NewNop()), s
}

func collect(t *testing.T, ch <-chan domain.StreamEvent) []domain.StreamEvent {
	t.Helper()
	var events []domain.StreamEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func eventTypes(events []domain.StreamEvent) []string {
	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestStreamChatPlainContent(t *testing.T) {
	streamer := &scriptedStreamer{rounds: [][]llm.StreamChunk{
		{contentChunk("Hello"), contentChunk(" there"), finishChunk("stop")},
	}}
	svc, s := newService(streamer)

	events := collect(t, svc.StreamChat(context.Background(), "s1", "hi"))

	assert.Equal(t, []string{"content", "content", "done"}, eventTypes(events))
	assert.Equal(t, "Hello", events[0].Content)

	// Transcript: system, user, assistant.
	conv := s.Conversation("s1")
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, llm.RoleAssistant, conv.Messages[2].Role)
	assert.Equal(t, "Hello there", conv.Messages[2].Content)
}

func TestStreamChatToolCallExchange(t *testing.T) {
	streamer := &scriptedStreamer{rounds: [][]llm.StreamChunk{
		{
			contentChunk("Let me "),
			contentChunk("capture that."),
			toolChunk("call_1", "extract_information", `{"document_type"`),
			toolChunk("", "", `:"nda","extracted_data":{"parties":[{"name":"Acme"}]}}`),
			finishChunk(llm.FinishReasonToolCalls),
		},
		{
			contentChunk("Got it, Acme it is."),
			finishChunk("stop"),
		},
	}}
	svc, s := newService(streamer)

	events := collect(t, svc.StreamChat(context.Background(), "s1", "I need an NDA between Acme and Beta"))

	assert.Equal(t,
		[]string{"content", "content", "tool_call", "tool_result", "content", "done"},
		eventTypes(events),
	)

	toolCall := events[2]
	assert.Equal(t, "extract_information", toolCall.Function)
	assert.Equal(t, "nda", toolCall.Arguments["document_type"])

	toolResult := events[3]
	assert.Equal(t, "extract_information", toolResult.Function)
	assert.Equal(t, "success", toolResult.Result["status"])

	// The dispatcher ran against the session's document.
	doc, ok := s.Document("s1")
	require.True(t, ok)
	assert.Equal(t, "nda", doc.Type)

	// Transcript: system, user, assistant(tool call), tool, assistant.
	conv := s.Conversation("s1")
	require.Len(t, conv.Messages, 5)
	assert.Equal(t, llm.RoleAssistant, conv.Messages[2].Role)
	assert.Equal(t, "Let me capture that.", conv.Messages[2].Content)
	require.Len(t, conv.Messages[2].ToolCalls, 1)
	assert.Equal(t, "call_1", conv.Messages[2].ToolCalls[0].ID)
	assert.Equal(t, llm.RoleTool, conv.Messages[3].Role)
	assert.Equal(t, "call_1", conv.Messages[3].ToolCallID)
	assert.Contains(t, conv.Messages[3].Content, `"status":"success"`)
	assert.Equal(t, "Got it, Acme it is.", conv.Messages[4].Content)

	// The follow-up round saw the extended transcript: the first call had
	// system+user, the second added assistant+tool messages.
	require.Len(t, streamer.requests, 2)
	assert.Equal(t, 2, streamer.requests[0])
	assert.Equal(t, 4, streamer.requests[1])
}

func TestStreamChatMalformedArgumentsBecomeEmpty(t *testing.T) {
	streamer := &scriptedStreamer{rounds: [][]llm.StreamChunk{
		{
			toolChunk("call_1", "apply_edits", `{"edit_type": "mod`),
			finishChunk(llm.FinishReasonToolCalls),
		},
		{finishChunk("stop")},
	}}
	svc, _ := newService(streamer)

	events := collect(t, svc.StreamChat(context.Background(), "s1", "tweak it"))

	assert.Equal(t, []string{"tool_call", "tool_result", "done"}, eventTypes(events))
	assert.Empty(t, events[0].Arguments)
	assert.Equal(t, "success", events[1].Result["status"])
}

func TestStreamChatReusedToolCallIDDispatchedOnce(t *testing.T) {
	streamer := &scriptedStreamer{rounds: [][]llm.StreamChunk{
		{
			toolChunk("call_1", "extract_information", `{"document_type":"nda"}`),
			finishChunk(llm.FinishReasonToolCalls),
		},
		{
			toolChunk("call_1", "extract_information", `{"document_type":"nda"}`),
			finishChunk(llm.FinishReasonToolCalls),
		},
		{finishChunk("stop")},
	}}
	svc, _ := newService(streamer)

	events := collect(t, svc.StreamChat(context.Background(), "s1", "nda please"))

	assert.Equal(t, []string{"tool_call", "tool_result", "done"}, eventTypes(events))
	assert.Len(t, streamer.requests, 3)
}

func TestStreamChatUpstreamError(t *testing.T) {
	streamer := &scriptedStreamer{err: errors.New("connection refused")}
	svc, s := newService(streamer)

	events := collect(t, svc.StreamChat(context.Background(), "s1", "hi"))

	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].Type)
	assert.Equal(t, "connection refused", events[0].Error)

	// The user message was already appended before the upstream failed.
	msgs := s.Messages("s1")
	require.Len(t, msgs, 1)
	assert.Equal(t, llm.RoleUser, msgs[0].Role)
}

func TestStreamChatCanceledContextStopsQuietly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	streamer := &scriptedStreamer{rounds: [][]llm.StreamChunk{
		{contentChunk("never delivered"), finishChunk("stop")},
	}}
	svc, _ := newService(streamer)

	events := collect(t, svc.StreamChat(ctx, "s1", "hi"))
	assert.Empty(t, events)
}

func TestStreamChatEmptyRoundStillDone(t *testing.T) {
	streamer := &scriptedStreamer{rounds: [][]llm.StreamChunk{
		{finishChunk("stop")},
	}}
	svc, s := newService(streamer)

	events := collect(t, svc.StreamChat(context.Background(), "s1", "hi"))

	assert.Equal(t, []string{"done"}, eventTypes(events))
	// No empty assistant message is appended.
	require.Len(t, s.Messages("s1"), 1)
}
