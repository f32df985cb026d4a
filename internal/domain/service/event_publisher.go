package service

import "context"

// Rating event names published to the broker.
const (
	EventRatingSubmitted = "rating.submitted"
	EventRatingDeleted   = "rating.deleted"
)

// RatingEvent is the payload published when a rating changes, consumed by
// downstream analytics.
type RatingEvent struct {
	Event     string `json:"event"`
	RequestID string `json:"request_id,omitempty"` // For distributed tracing.
	RatingID  int64  `json:"rating_id"`
	UserID    int64  `json:"user_id"`
	StoreID   int64  `json:"store_id"`
	Score     int    `json:"score,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue.
// Publishing is best-effort: failures are logged, never surfaced to the client.
type EventPublisher interface {
	// PublishRatingEvent publishes a rating change for async processing.
	PublishRatingEvent(ctx context.Context, event *RatingEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
