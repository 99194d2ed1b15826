// Package domain defines the persistence models for events and feedback
// sessions. These types are mapped with GORM and form the core data layer
// of the feedback collection application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Message roles used in a session's conversation log.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Event represents an event for which feedback is collected. Events are owned
// by an organizer; only the organizer (or an admin) may read the event's
// aggregated analytics.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name / Description / Location: descriptive metadata.
//   - Date: when the event takes place.
//   - OrganizerID: identifier of the owning user; indexed for listing.
//   - FeedbackCount: number of completed feedback sessions, incremented by the
//     conversation engine when a session completes. Also acts as the expected
//     denominator for the response-rate estimate.
//   - IsActive: whether the event still accepts feedback.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Event struct {
	ID            string         `json:"id"             gorm:"type:char(36);primaryKey"`
	Name          string         `json:"name"           gorm:"type:varchar(255);not null"`
	Description   string         `json:"description"    gorm:"type:text"`
	Location      string         `json:"location"       gorm:"type:varchar(255)"`
	Date          time.Time      `json:"date"`
	OrganizerID   string         `json:"organizer_id"   gorm:"type:varchar(64);not null;index:idx_organizer_events"`
	FeedbackCount int            `json:"feedback_count" gorm:"not null;default:0"`
	IsActive      bool           `json:"is_active"      gorm:"not null;default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`
}

// TableName returns the database table name for Event.
func (Event) TableName() string { return "events" }

// ChatMessage is a single utterance within a feedback session. The log is
// append-only; messages are serialized as JSON inside the owning session row
// rather than normalized into their own table, keeping the session a single
// document that can be read and written atomically per turn.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackSession represents one end-to-end feedback conversation for an
// event, identified by a caller-supplied conversation id.
//
// The current question is never stored: it is derived each turn from Answers
// by scanning the question catalog in order for the first unanswered id.
// That makes a replayed request recompute the same position and overwrite the
// same answer key, so duplicate delivery of a turn is harmless.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - ConversationID: opaque caller-supplied session identifier (unique).
//   - EventID: the event this feedback belongs to (indexed).
//   - Messages: ordered conversation log (system/user/assistant), append-only.
//   - Answers: question id -> raw answer string.
//   - Sentiments: question id -> derived sentiment text, kept separate from
//     Answers so the answer map stays a closed mapping over catalog ids.
//   - Started: opt-in latch; false until the user agrees to give feedback.
//     Monotonic false -> true, like Completed.
//   - Completed: true once every catalog question is answered. Once set, the
//     engine never mutates the session again.
//   - CompletedAt: when Completed flipped to true.
//   - UserAgent / IPAddress: request metadata captured on creation.
type FeedbackSession struct {
	ID             string            `json:"id"              gorm:"type:char(36);primaryKey"`
	ConversationID string            `json:"conversation_id" gorm:"type:varchar(64);not null;uniqueIndex:ux_session_conversation"`
	EventID        string            `json:"event_id"        gorm:"type:char(36);not null;index:idx_event_sessions"`
	UserID         string            `json:"user_id,omitempty" gorm:"type:varchar(64);index"`
	Messages       []ChatMessage     `json:"messages"        gorm:"serializer:json;type:text"`
	Answers        map[string]string `json:"answers"         gorm:"serializer:json;type:text"`
	Sentiments     map[string]string `json:"sentiments"      gorm:"serializer:json;type:text"`
	Started        bool              `json:"started"         gorm:"not null;default:false"`
	Completed      bool              `json:"completed"       gorm:"not null;default:false;index"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	UserAgent      string            `json:"-"               gorm:"type:varchar(512)"`
	IPAddress      string            `json:"-"               gorm:"type:varchar(64)"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `json:"-"               gorm:"index"`
}

// TableName returns the database table name for FeedbackSession.
func (FeedbackSession) TableName() string { return "feedback_sessions" }

// Append adds a message to the session's conversation log with the current
// UTC timestamp.
func (s *FeedbackSession) Append(role, content string) {
	s.Messages = append(s.Messages, ChatMessage{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

// LastAssistantMessage returns the content of the most recent assistant
// message, or "" when the log contains none.
func (s *FeedbackSession) LastAssistantMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].Content
		}
	}
	return ""
}
