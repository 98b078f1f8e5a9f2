// Package chat exposes the conversational HTTP surface: the streaming chat
// endpoint plus conversation and document accessors.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexdraft/lexdraft/internal/domain"
	"github.com/lexdraft/lexdraft/internal/store"
)

// DefaultSessionID is used when a chat request names no session.
const DefaultSessionID = "default"

// Service streams chat exchanges as ordered events.
type Service interface {
	StreamChat(ctx context.Context, sessionID, userMessage string) <-chan domain.StreamEvent
}

// Handler handles chat API requests
type Handler struct {
	service       Service
	store         *store.Store
	llmConfigured bool
}

// NewHandler creates a new chat handler
func NewHandler(service Service, s *store.Store, llmConfigured bool) *Handler {
	return &Handler{service: service, store: s, llmConfigured: llmConfigured}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.GET("/conversation/:session_id", h.GetConversation)
	r.DELETE("/conversation/:session_id", h.ClearConversation)
	r.GET("/document/:session_id", h.GetDocument)
	r.GET("/health", h.Health)
}

// Chat handles a streaming chat message (SSE)
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	stream := h.service.StreamChat(c.Request.Context(), sessionID, req.Message)

	// Each callback writes one event and flushes before the next one is
	// received, so the client sees fragments as they arrive upstream.
	c.Stream(func(w io.Writer) bool {
		ev, ok := <-stream
		if !ok {
			return false
		}
		data, _ := json.Marshal(ev)
		fmt.Fprintf(w, "data: %s\n\n", data)
		return true
	})
}

// GetConversation returns the session transcript without the system message
func (h *Handler) GetConversation(c *gin.Context) {
	sessionID := c.Param("session_id")
	c.JSON(http.StatusOK, gin.H{"messages": h.store.Messages(sessionID)})
}

// ClearConversation resets the session and removes its document
func (h *Handler) ClearConversation(c *gin.Context) {
	sessionID := c.Param("session_id")
	h.store.Clear(sessionID)
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// GetDocument returns the session's document record, if any
func (h *Handler) GetDocument(c *gin.Context) {
	sessionID := c.Param("session_id")
	doc, ok := h.store.Document(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No document found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Health reports service liveness and upstream credential presence
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"llm_configured": h.llmConfigured,
	})
}
