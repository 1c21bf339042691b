package service

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/crud-suite/internal/events"
)

// emitEvent publishes an event once the state change is committed.
// Failures are logged and not returned.
func emitEvent(
	ctx context.Context,
	emitter events.EventEmitter,
	clock clockwork.Clock,
	log *slog.Logger,
	eventType string,
	payload interface{},
) {
	event, err := events.NewEvent(eventType, payload, clock.Now())
	if err != nil {
		log.Error("failed to build event", "error", err, "event_type", eventType)
		return
	}
	// The change is already committed, so a failed emit cannot fail the request
	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit event", "error", err, "event_type", eventType, "event_id", event.ID)
	}
}
