package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eventpulse/feedback-backend/internal/domain"
	"github.com/eventpulse/feedback-backend/internal/store"
)

// ErrInvalidEvent is returned by CreateEvent when required fields are missing.
var ErrInvalidEvent = errors.New("invalid event")

// EventCatalog is the directory surface the event service needs, a superset
// of what the conversation engine consumes.
type EventCatalog interface {
	EventDirectory
	Create(ctx context.Context, ev *domain.Event) (*domain.Event, error)
	List(ctx context.Context, organizerID string, limit, offset int) ([]domain.Event, int64, error)
}

// NewEventInput carries the caller-supplied fields for event creation.
type NewEventInput struct {
	Name        string
	Description string
	Location    string
	Date        time.Time
}

// EventService exposes event CRUD on top of the directory.
type EventService struct {
	Events EventCatalog
}

// NewEventService wires the service.
func NewEventService(events EventCatalog) *EventService {
	return &EventService{Events: events}
}

// CreateEvent validates and persists a new event owned by organizerID.
func (s *EventService) CreateEvent(ctx context.Context, organizerID string, in NewEventInput) (*domain.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || organizerID == "" {
		return nil, ErrInvalidEvent
	}
	ev := &domain.Event{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Date:        in.Date,
		OrganizerID: organizerID,
		IsActive:    true,
	}
	return s.Events.Create(ctx, ev)
}

// GetEvent returns the event with the given id, or ErrEventNotFound.
func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ev, err := s.Events.Find(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

// ListEvents returns a page of the caller's own events plus their total
// count; admins see every organizer's events. Limit defaults to 20 and is
// capped at 100; a negative offset is treated as 0.
func (s *EventService) ListEvents(ctx context.Context, userID, role string, limit, offset int) ([]domain.Event, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	organizerID := userID
	if role == RoleAdmin {
		organizerID = ""
	}
	return s.Events.List(ctx, organizerID, limit, offset)
}
