// Package services – ConversationService
//
// This file implements the conversation state machine that walks a user
// through the feedback questionnaire. A session is in one of three states,
// none of which is stored directly:
//
//   - not started: the opt-in latch is unset; the user has not agreed to give
//     feedback yet.
//   - in progress at question k: k is derived each turn as the first catalog
//     question id absent from the session's answers.
//   - complete: every question is answered; the session is never mutated again.
//
// Deriving the position from the answer set (instead of a stored cursor)
// makes a replayed request recompute the same index and overwrite the same
// answer key. Turns for the same conversation id are additionally serialized
// through a keyed mutex; without that, two concurrent requests carrying
// *different* messages for the same question would be a genuine lost-update
// (last writer wins on the answer key).
//
// Reply, sentiment, and conclusion text comes from the generation adapter,
// whose own contract absorbs every remote failure into static fallback text;
// the engine performs no error handling on that path. Persistence failures
// are the only errors surfaced, as the uniform ErrProcessingFailed.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eventpulse/feedback-backend/internal/catalog"
	"github.com/eventpulse/feedback-backend/internal/domain"
	"github.com/eventpulse/feedback-backend/internal/genai"
	"github.com/eventpulse/feedback-backend/internal/store"
)

// systemPrompt seeds every new session's message log.
const systemPrompt = "You are an event feedback assistant. Your job is to collect feedback about an event in a friendly, conversational manner."

// optInTokens mark a message as agreement to start the questionnaire,
// matched as case-insensitive substrings.
var optInTokens = []string{"yes", "sure", "okay", "ok", "fine", "yeah"}

// EventDirectory is the event collaborator the engine consumes: existence
// checks on each turn and the completed-feedback counter bump on completion.
type EventDirectory interface {
	Find(ctx context.Context, id string) (*domain.Event, error)
	IncrementFeedback(ctx context.Context, id string) error
}

// Generator produces conversational text. Implementations never fail; see
// genai.Adapter for the fallback contract.
type Generator interface {
	Reply(ctx context.Context, history []genai.Message) string
	Sentiment(ctx context.Context, text string) string
	Conclusion(ctx context.Context, history []genai.Message) string
}

// TurnRequest is one incoming user message for a conversation.
type TurnRequest struct {
	ConversationID string
	EventID        string
	Message        string
	UserID         string
	UserAgent      string
	IPAddress      string
}

// TurnResult is the assistant's reply plus the session completion flag.
type TurnResult struct {
	Message  string
	Complete bool
}

// ConversationService orchestrates catalog, validator, generation adapter,
// and session store for each turn.
type ConversationService struct {
	Store   store.SessionStore
	Events  EventDirectory
	Gen     Generator
	Catalog *catalog.Catalog

	// MaxMessageRunes caps incoming messages; 0 disables the check.
	MaxMessageRunes int

	locks *keyedMutex
}

// NewConversationService wires the engine's collaborators.
func NewConversationService(st store.SessionStore, events EventDirectory, gen Generator, cat *catalog.Catalog) *ConversationService {
	return &ConversationService{
		Store:           st,
		Events:          events,
		Gen:             gen,
		Catalog:         cat,
		MaxMessageRunes: 2000,
		locks:           newKeyedMutex(),
	}
}

// ProcessTurn runs one turn of the state machine and persists the outcome.
//
// Errors: ErrEmptyMessage / ErrMessageTooLong for unusable input,
// ErrEventNotFound for an unknown event, ErrProcessingFailed (wrapping the
// cause) when the session cannot be persisted. Generation never errors.
func (s *ConversationService) ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	tr := otel.Tracer("services/ConversationService")
	ctx, span := tr.Start(ctx, "ProcessTurn",
		trace.WithAttributes(
			attribute.String("conversation.id", req.ConversationID),
			attribute.String("event.id", req.EventID),
		),
	)
	defer span.End()

	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(msg) > s.MaxMessageRunes {
		return nil, ErrMessageTooLong
	}

	unlock := s.locks.Lock(req.ConversationID)
	defer unlock()

	event, err := s.Events.Find(ctx, req.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	sess, err := s.Store.Get(ctx, req.ConversationID)
	if errors.Is(err, store.ErrNotFound) {
		sess, err = s.createSession(ctx, req, event.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	// A finished session is never reopened: echo the stored conclusion.
	if sess.Completed {
		reply := sess.LastAssistantMessage()
		if reply == "" {
			reply = s.Gen.Conclusion(ctx, history(sess))
		}
		return &TurnResult{Message: reply, Complete: true}, nil
	}

	sess.Append(domain.RoleUser, msg)

	var reply string
	complete := false
	switch {
	case !sess.Started:
		reply = s.handleOptIn(ctx, sess, msg)
	default:
		reply, complete = s.handleAnswer(ctx, sess, event, msg)
	}

	sess.Append(domain.RoleAssistant, reply)

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}
	return &TurnResult{Message: reply, Complete: complete}, nil
}

func (s *ConversationService) createSession(ctx context.Context, req TurnRequest, eventID string) (*domain.FeedbackSession, error) {
	sess := &domain.FeedbackSession{
		ConversationID: req.ConversationID,
		EventID:        eventID,
		UserID:         req.UserID,
		Answers:        map[string]string{},
		Sentiments:     map[string]string{},
		UserAgent:      req.UserAgent,
		IPAddress:      req.IPAddress,
	}
	sess.Append(domain.RoleSystem, systemPrompt)
	return s.Store.Create(ctx, sess)
}

// handleOptIn decides whether the message starts the questionnaire. On
// opt-in, the first question is asked; otherwise the adapter generates an
// encouraging reply (static templates when no remote backend is available).
func (s *ConversationService) handleOptIn(ctx context.Context, sess *domain.FeedbackSession, msg string) string {
	lower := strings.ToLower(msg)
	for _, t := range optInTokens {
		if strings.Contains(lower, t) {
			sess.Started = true
			return s.Catalog.ByIndex(0).Prompt
		}
	}
	return s.Gen.Reply(ctx, history(sess))
}

// handleAnswer validates the message against the current question, records
// it, and produces the next prompt or the conclusion.
func (s *ConversationService) handleAnswer(ctx context.Context, sess *domain.FeedbackSession, event *domain.Event, msg string) (reply string, complete bool) {
	k := s.Catalog.NextIndex(sess.Answers)
	if k >= s.Catalog.Len() {
		// Answers full but Completed not yet set: a previous turn's save was
		// lost after answering the last question. Close out now.
		return s.finish(ctx, sess, event), true
	}
	q := s.Catalog.ByIndex(k)

	if v := catalog.Validate(q, msg); !v.OK {
		return v.Reason, false
	}

	if sess.Answers == nil {
		sess.Answers = map[string]string{}
	}
	sess.Answers[q.ID] = msg

	if q.Type == catalog.TypeFreeText {
		// The adapter absorbs remote failures into the static heuristic, so
		// the derived sentiment is always present for free-text answers.
		if sess.Sentiments == nil {
			sess.Sentiments = map[string]string{}
		}
		sess.Sentiments[q.ID] = s.Gen.Sentiment(ctx, msg)
	}

	next := k + 1
	if next >= s.Catalog.Len() {
		return s.finish(ctx, sess, event), true
	}

	nq := s.Catalog.ByIndex(next)
	if rating, ok := catalog.RatingValue(msg); ok && q.Type == catalog.TypeRating && rating <= 2 && nq.ID == catalog.QuestionImprovements {
		// Low rating directly before the improvements question: probe that
		// aspect specifically instead of asking the generic prompt.
		return fmt.Sprintf("I noticed you rated %s quite low. %s Specifically, what about the %s could be better?", q.ID, nq.Prompt, q.ID), false
	}
	return nq.Prompt, false
}

// finish marks the session complete, generates the conclusion, and bumps the
// event's feedback counter. The counter call is at-least-once: a lost save
// after a successful increment double-counts on retry, which is acceptable
// for an estimate denominator.
func (s *ConversationService) finish(ctx context.Context, sess *domain.FeedbackSession, event *domain.Event) string {
	reply := s.Gen.Conclusion(ctx, history(sess))

	now := time.Now().UTC()
	sess.Completed = true
	sess.CompletedAt = &now

	if err := s.Events.IncrementFeedback(ctx, event.ID); err != nil {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
	}
	return reply
}

// history converts the session log into adapter messages.
func history(sess *domain.FeedbackSession) []genai.Message {
	out := make([]genai.Message, 0, len(sess.Messages))
	for _, m := range sess.Messages {
		out = append(out, genai.Message{Role: m.Role, Content: m.Content})
	}
	return out
}
