package service

import (
	"context"
	"time"
)

// Activity event types.
const (
	EventUserRegistered  = "user.registered"
	EventTodoCreated     = "todo.created"
	EventTodoCompleted   = "todo.completed"
	EventTodoReopened    = "todo.reopened"
	EventTodoDeleted     = "todo.deleted"
	EventCategoryDeleted = "category.deleted"
)

// ActivityEvent records something a user did.
type ActivityEvent struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	ResourceID string    `json:"resource_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish sends an activity event
	Publish(ctx context.Context, event *ActivityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
