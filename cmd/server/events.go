package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// loggingBus logs every domain event before handing it to the wrapped bus
type loggingBus struct {
	events.EventBus
}

func newLoggingBus(bus events.EventBus) *loggingBus {
	return &loggingBus{EventBus: bus}
}

// Publish logs the event and forwards it
func (b *loggingBus) Publish(ctx context.Context, event events.Event) error {
	slog.InfoContext(ctx, "domain event", "type", event.Type())
	return b.EventBus.Publish(ctx, event)
}
