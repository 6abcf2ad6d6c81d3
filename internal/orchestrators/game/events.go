package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// publish hands committed domain events to the bus. Publishing failures are
// logged only; the action has already been committed.
func (o *Orchestrator) publish(ctx context.Context, pending []events.Event) {
	if o.eventBus == nil {
		return
	}
	for _, event := range pending {
		if err := o.eventBus.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish event",
				"type", event.Type(),
				"error", err)
		}
	}
}
