// Package catalog defines the fixed feedback questionnaire: an ordered
// sequence of questions, lookups over it, and answer validation by expected
// type. The catalog is pure data; the position of a session within it is
// always derived from the session's answer map, never stored.
package catalog

// AnswerType describes the kind of answer a question expects.
type AnswerType string

// Supported answer types.
const (
	TypeRating   AnswerType = "rating"
	TypeFreeText AnswerType = "text"
	TypeYesNo    AnswerType = "yesno"
)

// Well-known question ids referenced by the conversation engine and the
// analytics aggregator.
const (
	QuestionOverall      = "overall"
	QuestionContent      = "content"
	QuestionSpeakers     = "speakers"
	QuestionVenue        = "venue"
	QuestionHighlights   = "highlights"
	QuestionImprovements = "improvements"
	QuestionFuture       = "future"
)

// Question is a single catalog entry. Immutable after process start.
type Question struct {
	ID     string
	Prompt string
	Type   AnswerType
}

// Catalog is an ordered, immutable question sequence. The declaration order
// is the canonical progression through the questionnaire.
type Catalog struct {
	questions []Question
}

// New builds a catalog from an explicit question sequence. The slice is
// copied; callers cannot mutate the catalog afterwards.
func New(questions []Question) *Catalog {
	qs := make([]Question, len(questions))
	copy(qs, questions)
	return &Catalog{questions: qs}
}

// Default returns the standard event feedback questionnaire: four rating
// questions, two free-text questions, and one yes/no question.
func Default() *Catalog {
	return &Catalog{questions: []Question{
		{
			ID:     QuestionOverall,
			Prompt: "On a scale of 1-5, how would you rate your overall experience at the event?",
			Type:   TypeRating,
		},
		{
			ID:     QuestionContent,
			Prompt: "How satisfied were you with the content and topics covered? (1-5)",
			Type:   TypeRating,
		},
		{
			ID:     QuestionSpeakers,
			Prompt: "How would you rate the speakers and presenters? (1-5)",
			Type:   TypeRating,
		},
		{
			ID:     QuestionVenue,
			Prompt: "How satisfied were you with the venue and facilities? (1-5)",
			Type:   TypeRating,
		},
		{
			ID:     QuestionHighlights,
			Prompt: "What were the highlights of the event for you?",
			Type:   TypeFreeText,
		},
		{
			ID:     QuestionImprovements,
			Prompt: "What aspects of the event could be improved?",
			Type:   TypeFreeText,
		},
		{
			ID:     QuestionFuture,
			Prompt: "Would you be interested in attending similar events in the future?",
			Type:   TypeYesNo,
		},
	}}
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int { return len(c.questions) }

// ByIndex returns the question at position i. It panics on an out-of-range
// index; callers derive indexes from NextIndex and never exceed Len.
func (c *Catalog) ByIndex(i int) Question { return c.questions[i] }

// IndexOf returns the position of the question with the given id, or -1 when
// the id is not part of the catalog.
func (c *Catalog) IndexOf(id string) int {
	for i, q := range c.questions {
		if q.ID == id {
			return i
		}
	}
	return -1
}

// RatingIDs returns the ids of all rating-type questions in catalog order.
func (c *Catalog) RatingIDs() []string {
	out := make([]string, 0, len(c.questions))
	for _, q := range c.questions {
		if q.Type == TypeRating {
			out = append(out, q.ID)
		}
	}
	return out
}

// FreeTextIDs returns the ids of all free-text questions in catalog order.
func (c *Catalog) FreeTextIDs() []string {
	out := make([]string, 0, len(c.questions))
	for _, q := range c.questions {
		if q.Type == TypeFreeText {
			out = append(out, q.ID)
		}
	}
	return out
}

// NextIndex derives the current question position from an answer map: the
// index of the first catalog question whose id is absent from answers. When
// every question is answered it returns Len(), which callers treat as the
// completed state.
func (c *Catalog) NextIndex(answers map[string]string) int {
	for i, q := range c.questions {
		if _, ok := answers[q.ID]; !ok {
			return i
		}
	}
	return len(c.questions)
}
