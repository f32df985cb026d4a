package event

import (
	"context"

	"storerate/internal/domain/service"
)

// noopPublisher discards every event. Used when no broker is configured.
type noopPublisher struct{}

// NewNoop returns a publisher that drops all events.
func NewNoop() service.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishRatingEvent(context.Context, *service.RatingEvent) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
