package testutils

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// RecordingBus is an events.EventBus that keeps every published event
type RecordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

// NewRecordingBus returns an empty recording bus
func NewRecordingBus() *RecordingBus {
	return &RecordingBus{}
}

// Publish records the event
func (b *RecordingBus) Publish(_ context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

// Subscribe is a no-op
func (b *RecordingBus) Subscribe(_ string, _ events.Handler) string { return "recording" }

// SubscribeFunc is a no-op
func (b *RecordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "recording"
}

// Unsubscribe is a no-op
func (b *RecordingBus) Unsubscribe(_ string) error { return nil }

// Clear is a no-op
func (b *RecordingBus) Clear(_ string) {}

// ClearAll is a no-op
func (b *RecordingBus) ClearAll() {}

// Types returns the types of the published events in order
func (b *RecordingBus) Types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]string, 0, len(b.published))
	for _, e := range b.published {
		types = append(types, e.Type())
	}
	return types
}

// Events returns the published events in order
func (b *RecordingBus) Events() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.published...)
}

var _ events.EventBus = (*RecordingBus)(nil)
