// Package services defines the business logic for feedback conversations,
// events, and analytics. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrEventNotFound indicates that the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrEmptyMessage is returned when a turn request carries an empty message.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when a turn request exceeds the configured
	// maximum message length.
	ErrMessageTooLong = errors.New("message too long")

	// ErrProcessingFailed is the uniform error surfaced when persisting a turn
	// fails. The conversational effect of the turn may be lost; a retried
	// request recomputes the same derived question index and re-validates the
	// same answer.
	ErrProcessingFailed = errors.New("failed to process message")

	// ErrForbiddenAnalytics is returned when the caller is neither the
	// event's organizer nor an admin.
	ErrForbiddenAnalytics = errors.New("no access to this event's analytics")
)
