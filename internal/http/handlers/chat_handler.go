// Chat HTTP handlers.
//
// This file exposes the feedback conversation endpoint:
//   - POST /chat   (one turn of a feedback conversation)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/feedback-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ConversationService runs one turn of a feedback conversation.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ConversationService interface {
	ProcessTurn(ctx context.Context, req services.TurnRequest) (*services.TurnResult, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for conversations, events, and analytics.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	convSvc      ConversationService
	eventSvc     EventService
	analyticsSvc AnalyticsService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(convSvc ConversationService, eventSvc EventService, analyticsSvc AnalyticsService) *Handlers {
	return &Handlers{convSvc: convSvc, eventSvc: eventSvc, analyticsSvc: analyticsSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// userRole extracts the caller's role the same way: Gin context first, then
// the "X-User-Role" demo header, defaulting to "attendee".
func userRole(c *gin.Context) string {
	if v, ok := c.Get("userRole"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-Role")); h != "" {
			return h
		}
	}
	return "attendee"
}

//
// DTOs
//

// ChatRequest is the JSON payload for one conversation turn.
type ChatRequest struct {
	// Message is the user's utterance for this turn.
	Message string `json:"message" example:"The venue was great"`
	// EventID identifies the event feedback is collected for.
	EventID string `json:"eventId" example:"4f2c9f3a-4c1f-4f7e-9a58-2f9f0a7a1b22"`
	// ConversationID is the client-generated id that threads turns together.
	ConversationID string `json:"conversationId" example:"conv-1724832000"`
}

// ChatResponse is the assistant's reply for one turn.
type ChatResponse struct {
	Message    string `json:"message"`
	IsComplete bool   `json:"isComplete"`
}

//
// Handlers
//

// Chat handles POST /chat: one turn of a feedback conversation.
//
// Responses:
//   - 200 with the assistant reply and completion flag
//   - 400 when a required field is missing or the message is unusable
//   - 404 when the event does not exist
//   - 500 when the turn cannot be persisted
func (h *Handlers) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Message is required")
		return
	}
	if strings.TrimSpace(req.EventID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Event ID is required")
		return
	}
	if strings.TrimSpace(req.ConversationID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Conversation ID is required")
		return
	}

	res, err := h.convSvc.ProcessTurn(c.Request.Context(), services.TurnRequest{
		ConversationID: strings.TrimSpace(req.ConversationID),
		EventID:        strings.TrimSpace(req.EventID),
		Message:        req.Message,
		UserID:         userID(c),
		UserAgent:      c.Request.UserAgent(),
		IPAddress:      c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			fail(c, http.StatusNotFound, ErrCodeEventNotFound, "event not found")
		case errors.Is(err, services.ErrEmptyMessage):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Message is required")
		case errors.Is(err, services.ErrMessageTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeChatFailed, "Failed to process message")
		}
		return
	}

	ok(c, http.StatusOK, ChatResponse{Message: res.Message, IsComplete: res.Complete})
}
