// Event HTTP handlers.
//
// This file exposes REST endpoints for event resources:
//   - POST /events        (create)
//   - GET  /events        (list, paginated)
//   - GET  /events/{id}   (fetch)
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/feedback-backend/internal/domain"
	"github.com/eventpulse/feedback-backend/internal/services"
	"github.com/eventpulse/feedback-backend/internal/utils"
)

// EventService defines event lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type EventService interface {
	CreateEvent(ctx context.Context, organizerID string, in services.NewEventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context, userID, role string, limit, offset int) ([]domain.Event, int64, error)
}

// CreateEventRequest is the JSON payload for creating an event.
type CreateEventRequest struct {
	Name        string    `json:"name" binding:"required,min=1,max=255" example:"GopherCon 2026"`
	Description string    `json:"description" example:"Annual Go conference"`
	Location    string    `json:"location" example:"Berlin"`
	Date        time.Time `json:"date" example:"2026-09-12T09:00:00Z"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListEventsResponse wraps a page of events and pagination information.
type ListEventsResponse struct {
	Events     []domain.Event `json:"events"`
	Pagination Pagination     `json:"pagination"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// CreateEvent handles POST /events. The caller becomes the event's organizer.
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required (1-255 chars)")
		return
	}

	ev, err := h.eventSvc.CreateEvent(c.Request.Context(), userID(c), services.NewEventInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidEvent) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, ev)
}

// GetEvent handles GET /events/:id.
func (h *Handlers) GetEvent(c *gin.Context) {
	ev, err := h.eventSvc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			fail(c, http.StatusNotFound, ErrCodeEventNotFound, "event not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ev)
}

// ListEvents handles GET /events with page/page_size query params. Callers
// see their own events; admins see everyone's.
func (h *Handlers) ListEvents(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.eventSvc.ListEvents(c.Request.Context(), userID(c), userRole(c), pageSize, (page-1)*pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListEventsResponse{
		Events: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}
