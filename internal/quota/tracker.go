// Package quota gates actions by per-UTC-day counters and rolling cooldown windows.
//
// Daily counters are stored as (count, date) pairs. A stored date older than
// today means the counter is logically zero, so no background reset is needed.
package quota

import (
	"time"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
	"github.com/KirkDiggler/petbot/internal/rules"
)

// Action names a quota- or cooldown-gated action
type Action string

// Daily actions
const (
	ActionFeed     Action = "feed"
	ActionZonewalk Action = "zonewalk"
	ActionWheel    Action = "wheel"
)

// Cooldown actions
const (
	ActionPet   Action = "pet"
	ActionFight Action = "fight"
)

// Config holds the dependencies of the tracker
type Config struct {
	Rules *rules.Rules
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Rules == nil {
		vb.RequiredField("Rules")
	}

	return vb.Build()
}

// Tracker reads and updates quota fields of a PlayerState
type Tracker struct {
	rules *rules.Rules
}

// New creates a tracker
func New(cfg *Config) (*Tracker, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid quota config")
	}

	return &Tracker{rules: cfg.Rules}, nil
}

// Limit returns the per-day limit of a daily action
func (t *Tracker) Limit(action Action) (int, error) {
	switch action {
	case ActionFeed:
		return t.rules.Quotas.FeedPerDay, nil
	case ActionZonewalk:
		return t.rules.Quotas.ZonewalkPerDay, nil
	case ActionWheel:
		return t.rules.Quotas.WheelPerDay, nil
	default:
		return 0, errors.InvalidArgumentf("%s is not a daily action", action)
	}
}

// Window returns the cooldown of a cooldown action
func (t *Tracker) Window(action Action) (time.Duration, error) {
	switch action {
	case ActionPet:
		return t.rules.Cooldowns.Pet, nil
	case ActionFight:
		return t.rules.Cooldowns.Fight, nil
	default:
		return 0, errors.InvalidArgumentf("%s is not a cooldown action", action)
	}
}

// DailyRemaining returns how many uses of action are left today
func (t *Tracker) DailyRemaining(state *entities.PlayerState, action Action, today clock.Date) (int, error) {
	limit, err := t.Limit(action)
	if err != nil {
		return 0, err
	}

	count, date := dailyFields(state, action)
	if date.Before(today) {
		return limit, nil
	}
	if remaining := limit - *count; remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}

// Consume records one use of action today, resetting the counter first on a new date
func (t *Tracker) Consume(state *entities.PlayerState, action Action, today clock.Date) error {
	if _, err := t.Limit(action); err != nil {
		return err
	}

	count, date := dailyFields(state, action)
	if date.Before(today) {
		*count = 0
		*date = today
	}
	*count++
	return nil
}

// CooldownRemaining returns the time left before action is allowed again.
// It is zero when the action was never taken or the window has elapsed.
func (t *Tracker) CooldownRemaining(state *entities.PlayerState, action Action, now time.Time) (time.Duration, error) {
	window, err := t.Window(action)
	if err != nil {
		return 0, err
	}

	last := cooldownField(state, action)
	if last.IsZero() {
		return 0, nil
	}
	elapsed := now.Sub(*last)
	if elapsed >= window {
		return 0, nil
	}
	if elapsed < 0 {
		return window, nil
	}
	return window - elapsed, nil
}

// StartCooldown records now as the last time action was taken
func (t *Tracker) StartCooldown(state *entities.PlayerState, action Action, now time.Time) error {
	if _, err := t.Window(action); err != nil {
		return err
	}
	*cooldownField(state, action) = now.UTC()
	return nil
}

func dailyFields(state *entities.PlayerState, action Action) (*int, *clock.Date) {
	switch action {
	case ActionFeed:
		return &state.FeedCount, &state.LastFeedDate
	case ActionZonewalk:
		return &state.ZonewalkCount, &state.LastZonewalkDate
	default:
		return &state.WheelCount, &state.LastWheelDate
	}
}

func cooldownField(state *entities.PlayerState, action Action) *time.Time {
	if action == ActionPet {
		return &state.LastPetAt
	}
	return &state.LastFightAt
}
