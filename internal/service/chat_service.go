// Package service drives streaming chat exchanges with the upstream model.
package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lexdraft/lexdraft/internal/config"
	"github.com/lexdraft/lexdraft/internal/domain"
	"github.com/lexdraft/lexdraft/internal/llm"
	"github.com/lexdraft/lexdraft/internal/store"
	"github.com/lexdraft/lexdraft/internal/tools"
)

// Streamer is the upstream model contract the orchestrator consumes.
type Streamer interface {
	CreateChatCompletionStream(ctx context.Context, req *llm.ChatCompletionRequest, callback llm.StreamCallback) (*llm.Usage, error)
}

// ChatService orchestrates one streaming exchange per request: it relays
// content fragments, accumulates tool-call fragments, dispatches completed
// calls, and re-invokes the model with tool results until no further tool
// calls are requested.
type ChatService struct {
	cfg        *config.Config
	store      *store.Store
	llm        Streamer
	dispatcher *tools.Dispatcher
	logger     *zap.Logger
}

// NewChatService creates a new chat service.
func NewChatService(
	cfg *config.Config,
	s *store.Store,
	streamer Streamer,
	dispatcher *tools.Dispatcher,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		cfg:        cfg,
		store:      s,
		llm:        streamer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// StreamChat runs a full exchange for one user message and returns the
// ordered event stream. The channel is closed when the exchange ends;
// production stops at the next send once ctx is canceled.
func (s *ChatService) StreamChat(ctx context.Context, sessionID, userMessage string) <-chan domain.StreamEvent {
	ch := make(chan domain.StreamEvent, 16)
	go func() {
		defer close(ch)
		s.run(ctx, sessionID, userMessage, ch)
	}()
	return ch
}

func (s *ChatService) run(ctx context.Context, sessionID, userMessage string, ch chan<- domain.StreamEvent) {
	exchangeID := uuid.New().String()[:8]
	logger := s.logger.With(
		zap.String("session_id", sessionID),
		zap.String("exchange_id", exchangeID),
	)

	conv := s.store.Conversation(sessionID)
	conv.Append(llm.ChatMessage{Role: llm.RoleUser, Content: userMessage})

	// Calls already answered in this exchange. Ids are tracked explicitly
	// rather than rescanning the transcript, so an id reused by the provider
	// across rounds cannot be dispatched twice.
	dispatched := make(map[string]struct{})

	for round := 1; ; round++ {
		acc := llm.NewToolCallAccumulator()
		var buf strings.Builder
		toolsReady := false

		_, err := s.llm.CreateChatCompletionStream(ctx, &llm.ChatCompletionRequest{
			Model:      s.cfg.LLM.Model,
			Messages:   conv.Messages,
			Tools:      tools.Definitions(),
			ToolChoice: "auto",
		}, func(chunk *llm.StreamChunk) error {
			for _, d := range chunk.Deltas() {
				switch d.Kind {
				case llm.DeltaContent:
					buf.WriteString(d.Content)
					if !emit(ctx, ch, domain.ContentEvent(d.Content)) {
						return ctx.Err()
					}
				case llm.DeltaToolCall:
					acc.Add(d.ToolCall)
				case llm.DeltaFinish:
					if d.FinishReason == llm.FinishReasonToolCalls {
						toolsReady = true
					}
				}
			}
			return nil
		})
		if err != nil {
			if ctx.Err() != nil {
				logger.Debug("client disconnected mid-stream", zap.Int("round", round))
				return
			}
			logger.Error("upstream stream failed", zap.Int("round", round), zap.Error(err))
			emit(ctx, ch, domain.ErrorEvent(err.Error()))
			return
		}

		if !toolsReady {
			if buf.Len() > 0 {
				conv.Append(llm.ChatMessage{Role: llm.RoleAssistant, Content: buf.String()})
			}
			break
		}

		for _, call := range acc.Calls() {
			if _, done := dispatched[call.ID]; done {
				continue
			}
			dispatched[call.ID] = struct{}{}

			args := map[string]any{}
			if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
				// Undecodable argument text is treated as an empty structure;
				// the round continues.
				logger.Warn("malformed tool-call arguments",
					zap.String("function", call.Function.Name),
					zap.Error(err),
				)
				args = map[string]any{}
			}

			if !emit(ctx, ch, domain.ToolCallEvent(call.Function.Name, args)) {
				return
			}

			result := s.dispatcher.Execute(sessionID, call.Function.Name, args)

			if !emit(ctx, ch, domain.ToolResultEvent(call.Function.Name, result)) {
				return
			}

			serialized, _ := json.Marshal(result)
			conv.Append(
				llm.ChatMessage{
					Role:      llm.RoleAssistant,
					Content:   buf.String(),
					ToolCalls: []llm.ToolCall{call},
				},
				llm.ChatMessage{
					Role:       llm.RoleTool,
					Content:    string(serialized),
					ToolCallID: call.ID,
				},
			)
		}

		logger.Info("tool round completed",
			zap.Int("round", round),
			zap.Int("dispatched", len(dispatched)),
		)
		// Next round continues with the extended transcript and no new user
		// message.
	}

	emit(ctx, ch, domain.DoneEvent())
}

// emit sends one event, giving up if the client context is gone. Each send
// is a suspension point: the transport drains the channel and flushes before
// the next upstream chunk is consumed.
func emit(ctx context.Context, ch chan<- domain.StreamEvent, ev domain.StreamEvent) bool {
	select {
	case ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
