package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eventpulse/feedback-backend/internal/domain"
	"github.com/eventpulse/feedback-backend/internal/repo"
)

// DemoEventID is the event seeded into the in-memory table in degraded mode,
// so that a developer running without a database still has a target to chat
// against.
const DemoEventID = "demo-event"

// Events is the event directory: lookups, creation, listing, and the
// completed-feedback counter. Like Store it runs against a process-local
// table when the database is unreachable.
type Events struct {
	db       *gorm.DB
	degraded bool

	mu  sync.RWMutex
	mem map[string]*domain.Event
}

// NewEvents builds the directory over db, probing connectivity once. In
// degraded mode a demo event is pre-seeded.
func NewEvents(db *gorm.DB) *Events {
	e := &Events{
		db:  db,
		mem: make(map[string]*domain.Event),
	}
	e.degraded = !probe(db)
	if e.degraded {
		log.Warn().Msg("events: database unreachable, running in-memory (non-durable)")
		e.mem[DemoEventID] = &domain.Event{
			ID:          DemoEventID,
			Name:        "Demo Event",
			Description: "Sample event for local development",
			Location:    "Online",
			Date:        time.Now().UTC(),
			OrganizerID: "demo-organizer",
			IsActive:    true,
			CreatedAt:   time.Now().UTC(),
		}
	}
	return e
}

// Degraded reports whether the directory runs against the process-local table.
func (e *Events) Degraded() bool { return e.degraded }

// Find returns the event with the given id, or ErrNotFound.
func (e *Events) Find(ctx context.Context, id string) (*domain.Event, error) {
	if e.degraded {
		e.mu.RLock()
		ev, ok := e.mem[id]
		e.mu.RUnlock()
		if !ok {
			return nil, ErrNotFound
		}
		return ev, nil
	}
	ev, err := repo.GetEvent(ctx, e.db, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

// Create persists a new event, assigning an id when the caller left it empty.
func (e *Events) Create(ctx context.Context, ev *domain.Event) (*domain.Event, error) {
	if e.degraded {
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}
		ev.CreatedAt = time.Now().UTC()
		e.mu.Lock()
		e.mem[ev.ID] = ev
		e.mu.Unlock()
		return ev, nil
	}
	return repo.CreateEvent(ctx, e.db, ev)
}

// List returns a page of events plus the total count, newest first. A
// non-empty organizerID restricts the listing to that organizer's events.
func (e *Events) List(ctx context.Context, organizerID string, limit, offset int) ([]domain.Event, int64, error) {
	if e.degraded {
		e.mu.RLock()
		all := make([]domain.Event, 0, len(e.mem))
		for _, ev := range e.mem {
			if organizerID != "" && ev.OrganizerID != organizerID {
				continue
			}
			all = append(all, *ev)
		}
		e.mu.RUnlock()
		sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

		total := int64(len(all))
		if offset >= len(all) {
			return []domain.Event{}, total, nil
		}
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		return all[offset:end], total, nil
	}

	total, err := repo.CountEvents(ctx, e.db, organizerID)
	if err != nil {
		return nil, 0, err
	}
	page, err := repo.ListEventsPage(ctx, e.db, organizerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return page, total, nil
}

// IncrementFeedback bumps the event's completed-feedback counter by one.
func (e *Events) IncrementFeedback(ctx context.Context, id string) error {
	if e.degraded {
		e.mu.Lock()
		defer e.mu.Unlock()
		ev, ok := e.mem[id]
		if !ok {
			return ErrNotFound
		}
		ev.FeedbackCount++
		return nil
	}
	if err := repo.IncrementFeedbackCount(ctx, e.db, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
