package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/eventpulse/feedback-backend/internal/catalog"
	"github.com/eventpulse/feedback-backend/internal/domain"
	"github.com/eventpulse/feedback-backend/internal/genai"
	"github.com/eventpulse/feedback-backend/internal/store"
)

// ---------- test fakes ----------

// fakeGen is a deterministic Generator: every operation returns a fixed,
// recognizable string.
type fakeGen struct{}

func (fakeGen) Reply(ctx context.Context, history []genai.Message) string {
	return "encourage"
}
func (fakeGen) Sentiment(ctx context.Context, text string) string {
	return "Sentiment: Positive. Topics: content."
}
func (fakeGen) Conclusion(ctx context.Context, history []genai.Message) string {
	return "conclusion"
}

// failingStore wraps a working store and fails Save after a given number of
// successful calls.
type failingStore struct {
	inner     store.SessionStore
	saveAfter int
	saves     int
}

func (f *failingStore) Get(ctx context.Context, id string) (*domain.FeedbackSession, error) {
	return f.inner.Get(ctx, id)
}
func (f *failingStore) Create(ctx context.Context, s *domain.FeedbackSession) (*domain.FeedbackSession, error) {
	return f.inner.Create(ctx, s)
}
func (f *failingStore) Save(ctx context.Context, s *domain.FeedbackSession) error {
	f.saves++
	if f.saves > f.saveAfter {
		return errors.New("disk full")
	}
	return f.inner.Save(ctx, s)
}

// countingEvents wraps the in-memory directory and counts increments.
type countingEvents struct {
	*store.Events
	mu         sync.Mutex
	increments int
}

func (c *countingEvents) IncrementFeedback(ctx context.Context, id string) error {
	c.mu.Lock()
	c.increments++
	c.mu.Unlock()
	return c.Events.IncrementFeedback(ctx, id)
}

// ---------- helpers ----------

func newConvService(t *testing.T) (*ConversationService, *countingEvents) {
	t.Helper()
	events := &countingEvents{Events: store.NewEvents(nil)}
	svc := NewConversationService(store.New(nil, 0), events, fakeGen{}, catalog.Default())
	return svc, events
}

func turn(t *testing.T, svc *ConversationService, conv, msg string) *TurnResult {
	t.Helper()
	res, err := svc.ProcessTurn(context.Background(), TurnRequest{
		ConversationID: conv,
		EventID:        store.DemoEventID,
		Message:        msg,
		UserID:         "user-1",
	})
	if err != nil {
		t.Fatalf("ProcessTurn(%q): %v", msg, err)
	}
	return res
}

// ---------- tests ----------

func TestProcessTurn_FullQuestionnaire(t *testing.T) {
	svc, events := newConvService(t)
	cat := catalog.Default()

	// First contact without agreement: the engine encourages, asks nothing.
	res := turn(t, svc, "conv-1", "hello")
	if res.Complete {
		t.Fatalf("conversation complete before opt-in")
	}
	if res.Message != "encourage" {
		t.Fatalf("expected generated encouragement, got %q", res.Message)
	}

	// Opt-in latches and asks the first question.
	res = turn(t, svc, "conv-1", "yes, happy to")
	if res.Message != cat.ByIndex(0).Prompt {
		t.Fatalf("after opt-in: got %q, want first prompt", res.Message)
	}

	// Answer all seven questions in order.
	answers := []string{"5", "4", "5", "3", "The talks were great", "More breaks please", "yes"}
	for i, ans := range answers {
		res = turn(t, svc, "conv-1", ans)
		if i < len(answers)-1 {
			if res.Complete {
				t.Fatalf("answer %d: completed early", i)
			}
			if res.Message != cat.ByIndex(i+1).Prompt {
				t.Fatalf("answer %d: got %q, want prompt %d", i, res.Message, i+1)
			}
		}
	}
	if !res.Complete {
		t.Fatalf("questionnaire not complete after final answer")
	}
	if res.Message != "conclusion" {
		t.Fatalf("final message = %q, want generated conclusion", res.Message)
	}

	// Session state: 7 answers, sentiments only for the free-text pair.
	sess, err := svc.Store.Get(context.Background(), "conv-1")
	if err != nil {
		t.Fatalf("Get session: %v", err)
	}
	if len(sess.Answers) != 7 {
		t.Fatalf("answers = %d, want 7", len(sess.Answers))
	}
	if len(sess.Sentiments) != 2 {
		t.Fatalf("sentiments = %d, want 2 (highlights, improvements)", len(sess.Sentiments))
	}
	if _, ok := sess.Sentiments[catalog.QuestionHighlights]; !ok {
		t.Fatalf("missing highlights sentiment")
	}
	if !sess.Completed || sess.CompletedAt == nil {
		t.Fatalf("session not marked complete: %+v", sess)
	}

	if events.increments != 1 {
		t.Fatalf("feedback counter incremented %d times, want 1", events.increments)
	}
}

func TestProcessTurn_InvalidAnswersDoNotAdvance(t *testing.T) {
	svc, _ := newConvService(t)
	cat := catalog.Default()

	turn(t, svc, "conv-1", "yes")

	// Out-of-range and non-numeric ratings are corrected, not recorded.
	for _, bad := range []string{"7", "amazing-ish", "0"} {
		res := turn(t, svc, "conv-1", bad)
		if res.Message != "Please provide a rating between 1 and 5." {
			t.Fatalf("invalid rating %q: got %q", bad, res.Message)
		}
	}

	sess, _ := svc.Store.Get(context.Background(), "conv-1")
	if len(sess.Answers) != 0 {
		t.Fatalf("invalid answers were recorded: %v", sess.Answers)
	}

	// A valid answer then advances to question two.
	res := turn(t, svc, "conv-1", "4")
	if res.Message != cat.ByIndex(1).Prompt {
		t.Fatalf("after valid answer: got %q, want second prompt", res.Message)
	}
}

func TestProcessTurn_YesNoValidation(t *testing.T) {
	svc, _ := newConvService(t)

	turn(t, svc, "conv-1", "yes")
	for _, ans := range []string{"5", "4", "5", "3", "talks", "breaks"} {
		turn(t, svc, "conv-1", ans)
	}

	res := turn(t, svc, "conv-1", "maybe")
	if res.Complete {
		t.Fatalf("completed on invalid yes/no answer")
	}
	if res.Message != "Please answer with a yes or no." {
		t.Fatalf("got %q, want yes/no correction", res.Message)
	}

	res = turn(t, svc, "conv-1", "nope")
	if !res.Complete {
		t.Fatalf("negative yes/no answer should complete the questionnaire")
	}
}

func TestProcessTurn_CompletedSessionIsNoOp(t *testing.T) {
	svc, events := newConvService(t)

	turn(t, svc, "conv-1", "yes")
	for _, ans := range []string{"5", "4", "5", "3", "talks", "breaks", "yes"} {
		turn(t, svc, "conv-1", ans)
	}

	sess, _ := svc.Store.Get(context.Background(), "conv-1")
	msgCount := len(sess.Messages)

	// Further turns return the stored conclusion and change nothing.
	for i := 0; i < 3; i++ {
		res := turn(t, svc, "conv-1", "another message")
		if !res.Complete {
			t.Fatalf("completed session reported incomplete")
		}
		if res.Message != "conclusion" {
			t.Fatalf("got %q, want stored conclusion", res.Message)
		}
	}

	sess, _ = svc.Store.Get(context.Background(), "conv-1")
	if len(sess.Messages) != msgCount {
		t.Fatalf("completed session was mutated: %d -> %d messages", msgCount, len(sess.Messages))
	}
	if events.increments != 1 {
		t.Fatalf("counter moved on no-op turns: %d", events.increments)
	}
}

func TestProcessTurn_OptInRequiresToken(t *testing.T) {
	svc, _ := newConvService(t)

	// None of these contain an agreement token.
	for _, msg := range []string{"hello", "what is this", "later maybe..."} {
		res := turn(t, svc, "conv-1", msg)
		if res.Message != "encourage" {
			t.Fatalf("non-opt-in %q started the questionnaire: %q", msg, res.Message)
		}
	}

	sess, _ := svc.Store.Get(context.Background(), "conv-1")
	if sess.Started {
		t.Fatalf("Started latched without agreement")
	}

	res := turn(t, svc, "conv-1", "sure")
	if res.Message != catalog.Default().ByIndex(0).Prompt {
		t.Fatalf("opt-in did not ask first question: %q", res.Message)
	}
}

func TestProcessTurn_LowRatingBeforeImprovements(t *testing.T) {
	// A catalog where a rating question directly precedes "improvements"
	// exercises the low-rating probe.
	cat := catalog.New([]catalog.Question{
		{ID: catalog.QuestionVenue, Prompt: "Rate the venue (1-5).", Type: catalog.TypeRating},
		{ID: catalog.QuestionImprovements, Prompt: "What could be improved?", Type: catalog.TypeFreeText},
	})
	events := &countingEvents{Events: store.NewEvents(nil)}
	svc := NewConversationService(store.New(nil, 0), events, fakeGen{}, cat)

	turn(t, svc, "conv-1", "yes")
	res := turn(t, svc, "conv-1", "2")

	want := fmt.Sprintf("I noticed you rated %s quite low. %s Specifically, what about the %s could be better?",
		catalog.QuestionVenue, "What could be improved?", catalog.QuestionVenue)
	if res.Message != want {
		t.Fatalf("low-rating probe:\n got %q\nwant %q", res.Message, want)
	}

	// A high rating asks the plain prompt.
	turn(t, svc, "conv-2", "yes")
	res = turn(t, svc, "conv-2", "5")
	if res.Message != "What could be improved?" {
		t.Fatalf("high rating: got %q, want plain prompt", res.Message)
	}
}

func TestProcessTurn_UnknownEvent(t *testing.T) {
	svc, _ := newConvService(t)

	_, err := svc.ProcessTurn(context.Background(), TurnRequest{
		ConversationID: "conv-1",
		EventID:        "missing-event",
		Message:        "hello",
	})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestProcessTurn_EmptyAndOversizedMessages(t *testing.T) {
	svc, _ := newConvService(t)

	if _, err := svc.ProcessTurn(context.Background(), TurnRequest{
		ConversationID: "conv-1",
		EventID:        store.DemoEventID,
		Message:        "   ",
	}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank message: err = %v, want ErrEmptyMessage", err)
	}

	if _, err := svc.ProcessTurn(context.Background(), TurnRequest{
		ConversationID: "conv-1",
		EventID:        store.DemoEventID,
		Message:        strings.Repeat("x", 2001),
	}); !errors.Is(err, ErrMessageTooLong) {
		t.Fatalf("oversized message: err = %v, want ErrMessageTooLong", err)
	}
}

func TestProcessTurn_SaveFailureSurfacesProcessingError(t *testing.T) {
	events := &countingEvents{Events: store.NewEvents(nil)}
	fs := &failingStore{inner: store.New(nil, 0), saveAfter: 1}
	svc := NewConversationService(fs, events, fakeGen{}, catalog.Default())

	turn(t, svc, "conv-1", "yes")

	_, err := svc.ProcessTurn(context.Background(), TurnRequest{
		ConversationID: "conv-1",
		EventID:        store.DemoEventID,
		Message:        "5",
	})
	if !errors.Is(err, ErrProcessingFailed) {
		t.Fatalf("err = %v, want ErrProcessingFailed", err)
	}
}

func TestProcessTurn_ConcurrentTurnsAreSerialized(t *testing.T) {
	svc, _ := newConvService(t)

	turn(t, svc, "conv-1", "yes")

	// Fire the same answer concurrently; the keyed lock serializes turns, so
	// the answer map ends with exactly one entry for the first question.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ProcessTurn(context.Background(), TurnRequest{
				ConversationID: "conv-1",
				EventID:        store.DemoEventID,
				Message:        "5",
			})
		}()
	}
	wg.Wait()

	sess, err := svc.Store.Get(context.Background(), "conv-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := sess.Answers[catalog.QuestionOverall]; got != "5" {
		t.Fatalf("overall answer = %q, want 5", got)
	}
}
