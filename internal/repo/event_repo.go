// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Event
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an event is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventpulse/feedback-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateEvent inserts a new Event row. The event ID is a randomly generated
// UUID (string), and CreatedAt is set to UTC. OrganizerID is expected to be
// populated by the caller.
func CreateEvent(ctx context.Context, db *gorm.DB, e *domain.Event) (*domain.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// GetEvent fetches a single event by its ID. If the record does not exist,
// it returns ErrNotFound.
func GetEvent(ctx context.Context, db *gorm.DB, id string) (*domain.Event, error) {
	var e domain.Event
	if err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// CountEvents returns the number of events owned by organizerID, or of all
// events when organizerID is empty (admin listings).
func CountEvents(ctx context.Context, db *gorm.DB, organizerID string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Event{})
	if organizerID != "" {
		q = q.Where("organizer_id = ?", organizerID)
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListEventsPage returns a paginated slice of events, ordered by creation
// time descending. A non-empty organizerID restricts the page to that
// organizer's events. The caller computes offset and limit.
func ListEventsPage(ctx context.Context, db *gorm.DB, organizerID string, limit, offset int) ([]domain.Event, error) {
	q := db.WithContext(ctx)
	if organizerID != "" {
		q = q.Where("organizer_id = ?", organizerID)
	}
	var out []domain.Event
	err := q.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// IncrementFeedbackCount bumps the event's completed-feedback counter by one.
// The update is a single SQL expression, so concurrent completions do not
// lose increments. If no rows are affected, it returns ErrNotFound.
func IncrementFeedbackCount(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("id = ?", id).
		UpdateColumn("feedback_count", gorm.Expr("feedback_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
