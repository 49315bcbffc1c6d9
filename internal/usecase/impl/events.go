package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "todoapp/internal/delivery/context"
	"todoapp/internal/domain/service"

	"github.com/google/uuid"
)

// eventEmitter publishes activity events on a best-effort basis. A publish
// failure is logged and never returned to the caller.
type eventEmitter struct {
	publisher service.EventPublisher
	now       func() time.Time
}

func newEventEmitter(publisher service.EventPublisher) eventEmitter {
	return eventEmitter{publisher: publisher, now: time.Now}
}

func (e eventEmitter) emit(ctx context.Context, logger *slog.Logger, eventType string, userID, resourceID uuid.UUID) {
	if e.publisher == nil {
		return
	}

	event := &service.ActivityEvent{
		ID:         uuid.NewString(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		UserID:     userID.String(),
		OccurredAt: e.now().UTC(),
	}
	if resourceID != uuid.Nil {
		event.ResourceID = resourceID.String()
	}

	// The change is already committed; announce it even if the client has gone.
	if err := e.publisher.Publish(deliverycontext.Detach(ctx), event); err != nil {
		logger.Warn("Failed to publish activity event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID),
			slog.Any("error", err),
		)
	}
}
