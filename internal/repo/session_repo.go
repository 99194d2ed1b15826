// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// FeedbackSession model.
//
// Sessions are looked up by the caller-supplied conversation id rather than
// the row's primary key, since the conversation id is the only identifier the
// chat client knows.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventpulse/feedback-backend/internal/domain"
)

// CreateSession inserts a new FeedbackSession row. The row ID is a randomly
// generated UUID; CreatedAt is set to UTC. The caller provides the
// conversation id, event id, and any request metadata already populated on s.
func CreateSession(ctx context.Context, db *gorm.DB, s *domain.FeedbackSession) (*domain.FeedbackSession, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSessionByConversationID fetches the session for a conversation id, or
// ErrNotFound when absent.
func GetSessionByConversationID(ctx context.Context, db *gorm.DB, conversationID string) (*domain.FeedbackSession, error) {
	var s domain.FeedbackSession
	err := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSession persists the full session state (message log, answers,
// sentiments, flags). Sessions are small documents, so a whole-row save keeps
// the read-modify-write of a turn a single write.
func SaveSession(ctx context.Context, db *gorm.DB, s *domain.FeedbackSession) error {
	return db.WithContext(ctx).Save(s).Error
}

// ListCompletedSessions returns all completed sessions for an event. Only the
// answer and sentiment payloads are needed by analytics, but rows are small
// enough that whole records are returned.
func ListCompletedSessions(ctx context.Context, db *gorm.DB, eventID string) ([]domain.FeedbackSession, error) {
	var out []domain.FeedbackSession
	err := db.WithContext(ctx).
		Where("event_id = ? AND completed = ?", eventID, true).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// CompletedSessionStats returns aggregate metadata for an event's completed
// sessions: the total number of rows and the maximum UpdatedAt timestamp
// among them. Used for conditional responses on the analytics endpoint.
// When the event has no completed sessions, count is 0 and maxUpdatedAt nil.
func CompletedSessionStats(ctx context.Context, db *gorm.DB, eventID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).
		Model(&domain.FeedbackSession{}).
		Where("event_id = ? AND completed = ?", eventID, true)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
