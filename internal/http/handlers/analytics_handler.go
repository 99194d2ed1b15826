// Analytics HTTP handler.
//
// This file exposes the aggregate feedback view:
//   - GET /analytics?eventId=...   (organizer or admin only)
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/feedback-backend/internal/services"
)

// AnalyticsService builds aggregate snapshots of completed feedback.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AnalyticsService interface {
	Build(ctx context.Context, userID, role, eventID string) (*services.Snapshot, error)
}

// statsProvider is the optional capability used for ETag support. The
// concrete analytics service implements it; test fakes need not.
type statsProvider interface {
	CompletedStats(ctx context.Context, eventID string) (int64, *time.Time, bool)
}

// Analytics handles GET /analytics. The eventId query parameter is required;
// the caller's identity comes from the demo headers (X-User-ID, X-User-Role).
// Supports weak ETag via If-None-Match and may return 304.
//
// Responses:
//   - 200 with the snapshot
//   - 304 when the snapshot is unchanged since the client's ETag
//   - 400 when eventId is missing
//   - 403 when the caller is neither the organizer nor an admin
//   - 404 when the event does not exist
func (h *Handlers) Analytics(c *gin.Context) {
	ctx := c.Request.Context()

	eventID := strings.TrimSpace(c.Query("eventId"))
	if eventID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Event ID is required")
		return
	}

	snap, err := h.analyticsSvc.Build(ctx, userID(c), userRole(c), eventID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			fail(c, http.StatusNotFound, ErrCodeEventNotFound, "event not found")
		case errors.Is(err, services.ErrForbiddenAnalytics):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "no access to this event's analytics")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "failed to build analytics")
		}
		return
	}

	// ETag check (best effort) after access control so the conditional path
	// leaks nothing to unauthorized callers.
	if src, hasStats := h.analyticsSvc.(statsProvider); hasStats {
		if count, maxTS, supported := src.CompletedStats(ctx, eventID); supported {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"analytics:%s:%d:%d"`, eventID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	ok(c, http.StatusOK, snap)
}
