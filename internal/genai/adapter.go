package genai

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/eventpulse/feedback-backend/internal/staticgen"
)

// Instructions appended as trailing system messages before calling the remote
// service. The static tier ignores them and works from the last user message.
const (
	hesitantInstruction = "The user seems hesitant to provide feedback. Respond in a friendly way, acknowledging their response, and gently encourage them to provide feedback when they're ready by saying \"yes\"."

	conclusionInstruction = "Create a friendly thank you message for completing the feedback. Mention that their feedback will help improve future events."

	sentimentInstruction = "You are a sentiment analysis tool. Analyze the sentiment of the following feedback and classify it as positive, negative, or neutral. Also extract key themes or topics mentioned in a structured format."
)

// Hardcoded last-resort string, used only when even the static tier has no
// user message to work from.
const defaultReply = "Thank you for your feedback. We appreciate your input!"

// Default operating parameters: 10 calls per rolling 60s window, abort a
// call after 5s.
const (
	DefaultCallTimeout = 5 * time.Second
	defaultRateWindow  = time.Minute
	defaultRateCalls   = 10
)

// Adapter is the response-generation fallback chain: remote completion when
// configured and within budget, the static response engine otherwise. Its
// operations return plain strings and never an error; degradation is logged,
// not surfaced.
//
// The call budget is process-wide shared state and safe under concurrent use.
type Adapter struct {
	client  Client // nil when no credential is configured
	static  *staticgen.Responder
	limiter *rate.Limiter
	timeout time.Duration
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

// WithBudget overrides the call budget: at most calls per window.
func WithBudget(calls int, window time.Duration) Option {
	return func(a *Adapter) {
		a.limiter = rate.NewLimiter(rate.Every(window/time.Duration(calls)), calls)
	}
}

// NewAdapter builds an Adapter. client may be nil, in which case every
// operation resolves through the static tier immediately.
func NewAdapter(client Client, static *staticgen.Responder, opts ...Option) *Adapter {
	a := &Adapter{
		client:  client,
		static:  static,
		limiter: rate.NewLimiter(rate.Every(defaultRateWindow/defaultRateCalls), defaultRateCalls),
		timeout: DefaultCallTimeout,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Remote reports whether a remote backend is configured. Informational only;
// callers never branch on it for correctness.
func (a *Adapter) Remote() bool { return a.client != nil }

// Reply generates a conversational reply to the given history for a user who
// has not opted into the questionnaire yet.
func (a *Adapter) Reply(ctx context.Context, history []Message) string {
	out := a.complete(ctx, append(history, Message{Role: "system", Content: hesitantInstruction}),
		CompletionOptions{Temperature: 0.7, MaxTokens: 1024})
	if out != "" {
		return out
	}
	if msg := lastUserMessage(history); msg != "" {
		return a.static.Reply(msg)
	}
	return defaultReply
}

// Sentiment classifies a free-text answer, returning the descriptive
// sentiment string to store alongside the answer.
func (a *Adapter) Sentiment(ctx context.Context, text string) string {
	msgs := []Message{
		{Role: "system", Content: sentimentInstruction},
		{Role: "user", Content: text},
	}
	out := a.complete(ctx, msgs, CompletionOptions{Temperature: 0.3, MaxTokens: 250})
	if out != "" {
		return out
	}
	return staticgen.Sentiment(text)
}

// Conclusion generates the closing thank-you message for a completed session.
func (a *Adapter) Conclusion(ctx context.Context, history []Message) string {
	out := a.complete(ctx, append(history, Message{Role: "system", Content: conclusionInstruction}),
		CompletionOptions{Temperature: 0.7, MaxTokens: 1024})
	if out != "" {
		return out
	}
	return a.static.Conclusion()
}

// complete attempts a single remote call and returns "" on any failure:
// missing client, exhausted budget, timeout, transport or API error, empty
// completion. No retries; conversational latency beats completion quality
// under the fallback design.
func (a *Adapter) complete(ctx context.Context, messages []Message, opts CompletionOptions) string {
	if a.client == nil {
		return ""
	}
	if !a.limiter.Allow() {
		log.Debug().Msg("genai: call budget exhausted, using static responses")
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.client.Complete(ctx, messages, opts)
	if err != nil {
		log.Warn().Err(err).Msg("genai: completion failed, using static responses")
		return ""
	}
	return out
}

func lastUserMessage(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return history[i].Content
		}
	}
	return ""
}
