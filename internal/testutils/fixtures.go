package testutils

import (
	"sync"
	"time"

	"github.com/KirkDiggler/petbot/internal/pkg/clock"
)

// Test identities shared by fixtures
const (
	TestChatID       int64 = -1001234567890
	TestPlayerID     int64 = 4242
	TestOpponentID   int64 = 7777
	TestDisplayName        = "Stalker"
	TestOpponentName       = "Bandit"
)

// TestEpoch is the default start time of ManualClock: 10:00 UTC
var TestEpoch = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

// ManualClock is a settable clock for scenario tests
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock stopped at now, or at TestEpoch when now is zero
func NewManualClock(now time.Time) *ManualClock {
	if now.IsZero() {
		now = TestEpoch
	}
	return &ManualClock{now: now.UTC()}
}

// Now returns the current fake time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// NextDay moves the clock to the same wall time on the following UTC day
func (c *ManualClock) NextDay() {
	c.Advance(24 * time.Hour)
}

var _ clock.Clock = (*ManualClock)(nil)
