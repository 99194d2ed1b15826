package services

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eventpulse/feedback-backend/internal/catalog"
	"github.com/eventpulse/feedback-backend/internal/domain"
)

// RoleAdmin may read analytics for any event; everyone else must be the
// event's organizer.
const RoleAdmin = "admin"

// topicPattern extracts the topic list from a sentiment summary. It matches
// "Topic:" / "Topics" (case-insensitive, colon optional) followed by a
// comma-separated run up to the first period or semicolon.
var topicPattern = regexp.MustCompile(`(?i)topics?:?\s*([^.;]+)[.;]`)

// maxKeyTopics caps the keyTopics list in a snapshot.
const maxKeyTopics = 5

// SessionSource lists an event's completed sessions for aggregation.
type SessionSource interface {
	ListCompleted(ctx context.Context, eventID string) ([]domain.FeedbackSession, error)
}

// statsSource is optionally implemented by session sources that can report
// aggregate metadata cheaply, enabling conditional HTTP responses.
type statsSource interface {
	CompletedStats(ctx context.Context, eventID string) (int64, *time.Time, error)
}

// RatingLists holds the raw rating values collected per question, in session
// order. Values are returned as collected, not bucketed or averaged; how to
// render them is a presentation concern. Empty lists stay empty, never nil.
type RatingLists struct {
	Overall  []int `json:"overall"`
	Content  []int `json:"content"`
	Speakers []int `json:"speakers"`
	Venue    []int `json:"venue"`
}

// SentimentBreakdown holds percentages over the stored sentiment values,
// rounded to the nearest integer. Each stored value counts once, so a session
// with both free-text answers contributes two tallies. The three percentages
// need not sum to exactly 100, and all stay zero when no values exist.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Snapshot is the aggregate view of an event's completed feedback.
type Snapshot struct {
	EventID        string             `json:"eventId"`
	TotalResponses int                `json:"totalResponses"`
	Ratings        RatingLists        `json:"ratings"`
	Sentiments     SentimentBreakdown `json:"sentiments"`
	KeyTopics      []string           `json:"keyTopics"`
	ResponseRate   int                `json:"responseRate"`
}

// AnalyticsService aggregates completed feedback sessions into snapshots.
// Aggregation is recomputed on demand; nothing is precomputed or cached.
type AnalyticsService struct {
	Events   EventDirectory
	Sessions SessionSource
	Catalog  *catalog.Catalog
}

// NewAnalyticsService wires the aggregator's collaborators.
func NewAnalyticsService(events EventDirectory, sessions SessionSource, cat *catalog.Catalog) *AnalyticsService {
	return &AnalyticsService{Events: events, Sessions: sessions, Catalog: cat}
}

// Build computes the snapshot for an event. The caller must be the event's
// organizer or an admin; otherwise ErrForbiddenAnalytics. Unknown events
// return ErrEventNotFound.
func (a *AnalyticsService) Build(ctx context.Context, userID, role, eventID string) (*Snapshot, error) {
	tr := otel.Tracer("services/AnalyticsService")
	ctx, span := tr.Start(ctx, "Build",
		trace.WithAttributes(attribute.String("event.id", eventID)),
	)
	defer span.End()

	event, err := a.Events.Find(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if role != RoleAdmin && event.OrganizerID != userID {
		return nil, ErrForbiddenAnalytics
	}

	sessions, err := a.Sessions.ListCompleted(ctx, eventID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		EventID:        eventID,
		TotalResponses: len(sessions),
		Ratings: RatingLists{
			Overall:  []int{},
			Content:  []int{},
			Speakers: []int{},
			Venue:    []int{},
		},
		KeyTopics: []string{},
	}

	lists := map[string]*[]int{
		catalog.QuestionOverall:  &snap.Ratings.Overall,
		catalog.QuestionContent:  &snap.Ratings.Content,
		catalog.QuestionSpeakers: &snap.Ratings.Speakers,
		catalog.QuestionVenue:    &snap.Ratings.Venue,
	}

	var pos, neu, neg int
	topicCount := map[string]int{}
	var topicOrder []string

	for _, sess := range sessions {
		for id, list := range lists {
			raw, ok := sess.Answers[id]
			if !ok {
				continue
			}
			// Only non-numeric answers are skipped; out-of-range numbers are
			// still collected raw.
			if v, numeric := ratingNumber(raw); numeric {
				*list = append(*list, v)
			}
		}

		for _, id := range a.Catalog.FreeTextIDs() {
			summary := sess.Sentiments[id]
			if summary != "" {
				switch sentimentLabel(summary) {
				case "positive":
					pos++
				case "negative":
					neg++
				default:
					neu++
				}
			}
			for _, topic := range extractTopics(summary) {
				if _, seen := topicCount[topic]; !seen {
					topicOrder = append(topicOrder, topic)
				}
				topicCount[topic]++
			}
		}
	}

	if tallies := pos + neu + neg; tallies > 0 {
		snap.Sentiments = SentimentBreakdown{
			Positive: percent(pos, tallies),
			Neutral:  percent(neu, tallies),
			Negative: percent(neg, tallies),
		}
	}

	snap.KeyTopics = topTopics(topicCount, topicOrder, maxKeyTopics)
	snap.ResponseRate = responseRate(len(sessions), event.FeedbackCount)
	return snap, nil
}

// CompletedStats reports the completed-session count and latest update time
// for an event, when the underlying source supports it. ok is false when the
// source cannot answer cheaply; callers then skip conditional responses.
func (a *AnalyticsService) CompletedStats(ctx context.Context, eventID string) (count int64, maxUpdatedAt *time.Time, ok bool) {
	src, supported := a.Sessions.(statsSource)
	if !supported {
		return 0, nil, false
	}
	n, ts, err := src.CompletedStats(ctx, eventID)
	if err != nil {
		return 0, nil, false
	}
	return n, ts, true
}

// sentimentLabel classifies one stored sentiment summary: positive when the
// text mentions "positive", else negative when it mentions "negative",
// otherwise neutral.
func sentimentLabel(summary string) string {
	lower := strings.ToLower(summary)
	switch {
	case strings.Contains(lower, "positive"):
		return "positive"
	case strings.Contains(lower, "negative"):
		return "negative"
	default:
		return "neutral"
	}
}

// ratingNumber parses the leading integer of a raw rating answer. Any parsed
// number is accepted, even outside 1..5; the answer validator keeps stored
// values in range, but aggregation does not re-police them.
func ratingNumber(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// extractTopics pulls the comma-separated topic list out of a sentiment
// summary. Only the first match in the text is used.
func extractTopics(summary string) []string {
	if summary == "" {
		return nil
	}
	m := topicPattern.FindStringSubmatch(summary)
	if m == nil {
		return nil
	}
	var out []string
	for _, part := range strings.Split(m[1], ",") {
		if t := strings.ToLower(strings.TrimSpace(part)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// topTopics ranks topics by frequency descending, breaking ties by first
// appearance, and returns at most limit of them.
func topTopics(count map[string]int, order []string, limit int) []string {
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return count[ranked[i]] > count[ranked[j]]
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if ranked == nil {
		ranked = []string{}
	}
	return ranked
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// responseRate estimates completion percentage from the event's feedback
// counter. The counter is at-least-once, so the ratio is clamped at 100; a
// zero counter yields 0.
func responseRate(completed, feedbackCount int) int {
	if feedbackCount <= 0 {
		return 0
	}
	r := percent(completed, feedbackCount)
	if r > 100 {
		return 100
	}
	return r
}
