// Package store holds all per-session state: conversation transcripts and
// in-progress document records. State is process-local and volatile by
// design; nothing here touches disk.
package store

import (
	"github.com/patrickmn/go-cache"

	"github.com/lexdraft/lexdraft/internal/domain"
	"github.com/lexdraft/lexdraft/internal/llm"
)

// Conversation is the ordered transcript for one session, in upstream wire
// shape. The first message is always the seeded system prompt.
type Conversation struct {
	Messages []llm.ChatMessage
}

// Append adds messages to the end of the transcript.
func (c *Conversation) Append(msgs ...llm.ChatMessage) {
	c.Messages = append(c.Messages, msgs...)
}

// Store maps opaque session identifiers to conversation and document state.
//
// Individual cache operations are safe for concurrent use, but two requests
// racing on the same session id can still interleave conversation appends
// and document saves (last write wins). A hardened build would hold a
// per-session mutex across a whole exchange.
type Store struct {
	systemPrompt  string
	conversations *cache.Cache
	documents     *cache.Cache
}

// New creates a store whose conversations are seeded with systemPrompt.
func New(systemPrompt string) *Store {
	return &Store{
		systemPrompt:  systemPrompt,
		conversations: cache.New(cache.NoExpiration, 0),
		documents:     cache.New(cache.NoExpiration, 0),
	}
}

func (s *Store) seeded() *Conversation {
	return &Conversation{Messages: []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: s.systemPrompt},
	}}
}

// Conversation returns the conversation for sessionID, creating and seeding
// it if absent.
func (s *Store) Conversation(sessionID string) *Conversation {
	if x, found := s.conversations.Get(sessionID); found {
		return x.(*Conversation)
	}
	conv := s.seeded()
	s.conversations.Set(sessionID, conv, cache.NoExpiration)
	return conv
}

// Messages returns the session's transcript without the seeded system
// message. A never-seen session yields an empty slice and is not created.
func (s *Store) Messages(sessionID string) []llm.ChatMessage {
	msgs := make([]llm.ChatMessage, 0)
	x, found := s.conversations.Get(sessionID)
	if !found {
		return msgs
	}
	for _, m := range x.(*Conversation).Messages {
		if m.Role == llm.RoleSystem {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// Document returns the session's document record, if any.
func (s *Store) Document(sessionID string) (*domain.Document, bool) {
	if x, found := s.documents.Get(sessionID); found {
		return x.(*domain.Document), true
	}
	return nil, false
}

// SaveDocument replaces the session's document record wholesale.
func (s *Store) SaveDocument(sessionID string, doc *domain.Document) {
	s.documents.Set(sessionID, doc, cache.NoExpiration)
}

// Clear resets the session to its seeded conversation and removes its
// document record. Clearing a never-seen session leaves it seeded.
func (s *Store) Clear(sessionID string) {
	s.conversations.Set(sessionID, s.seeded(), cache.NoExpiration)
	s.documents.Delete(sessionID)
}
