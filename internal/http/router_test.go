package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/feedback-backend/internal/config"
	"github.com/eventpulse/feedback-backend/internal/genai"
	"github.com/eventpulse/feedback-backend/internal/staticgen"
	"github.com/eventpulse/feedback-backend/internal/store"
)

// newTestEngine wires the full router against the in-memory (degraded) stack:
// no database, no remote generation backend.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.RateRPS = 1000
	cfg.RateBurst = 1000

	r := gin.New()
	RegisterRoutes(r, Deps{
		Sessions: store.New(nil, 0),
		Events:   store.NewEvents(nil),
		Gen:      genai.NewAdapter(nil, staticgen.New()),
	}, cfg)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Healthz(t *testing.T) {
	r := newTestEngine(t)

	w := get(r, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	// The in-memory stack reports degraded persistence, not failure.
	if !strings.Contains(w.Body.String(), "degraded") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRouter_HealthzExemptFromRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	// No replenishment, a single burst token: the second limited request
	// from the same client must be rejected.
	cfg.RateRPS = 0
	cfg.RateBurst = 1

	r := gin.New()
	RegisterRoutes(r, Deps{
		Sessions: store.New(nil, 0),
		Events:   store.NewEvents(nil),
		Gen:      genai.NewAdapter(nil, staticgen.New()),
	}, cfg)

	if w := get(r, "/nope"); w.Code != http.StatusNotFound {
		t.Fatalf("first request = %d, want 404", w.Code)
	}
	if w := get(r, "/nope"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", w.Code)
	}

	// Health checks keep working with the bucket drained.
	for i := 0; i < 3; i++ {
		if w := get(r, "/healthz"); w.Code != http.StatusOK {
			t.Fatalf("healthz %d = %d, want 200", i, w.Code)
		}
	}
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestEngine(t)

	if w := get(r, "/metrics"); w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
}

func TestRouter_NoRouteEnvelope(t *testing.T) {
	r := newTestEngine(t)

	w := get(r, "/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRouter_ChatEndToEnd(t *testing.T) {
	r := newTestEngine(t)

	// Opt in against the demo event and answer the first question.
	body := fmt.Sprintf(`{"message":"yes","eventId":%q,"conversationId":"conv-e2e"}`, store.DemoEventID)
	w := postJSON(r, "/api/v1/chat", body)
	if w.Code != http.StatusOK {
		t.Fatalf("opt-in status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message    string `json:"message"`
		IsComplete bool   `json:"isComplete"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.IsComplete {
		t.Fatalf("complete after opt-in")
	}
	if !strings.Contains(resp.Message, "1-5") {
		t.Fatalf("expected first rating prompt, got %q", resp.Message)
	}

	body = fmt.Sprintf(`{"message":"4","eventId":%q,"conversationId":"conv-e2e"}`, store.DemoEventID)
	w = postJSON(r, "/api/v1/chat", body)
	if w.Code != http.StatusOK {
		t.Fatalf("answer status = %d", w.Code)
	}
}

func TestRouter_UnknownEventIs404(t *testing.T) {
	r := newTestEngine(t)

	w := postJSON(r, "/api/v1/chat", `{"message":"yes","eventId":"missing","conversationId":"c"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRouter_AnalyticsForbiddenForStrangers(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics?eventId="+store.DemoEventID, nil)
	req.Header.Set("X-User-ID", "not-the-organizer")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
