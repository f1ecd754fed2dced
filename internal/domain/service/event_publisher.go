package service

import (
	"context"
	"time"
)

// Account lifecycle event types.
const (
	EventAccountRegistered      = "account.registered"
	EventAccountDeleted         = "account.deleted"
	EventAccountPasswordChanged = "account.password_changed"
)

// AccountEvent represents an account lifecycle change published for downstream consumers.
type AccountEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventType  string    `json:"event_type"`
	AccountID  string    `json:"account_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishAccountEvent publishes an account lifecycle event for async processing.
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
