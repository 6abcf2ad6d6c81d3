// Package lifecycle owns the alive/dead state machine of a creature:
// creation, weight changes, death, the recruit pool and respawn.
package lifecycle

import (
	"time"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
	"github.com/KirkDiggler/petbot/internal/rules"
)

// RecruitStatus is the result of a respawn attempt
type RecruitStatus int

// Recruit results
const (
	Recruited RecruitStatus = iota
	AlreadyAlive
	NoRecruits
)

func (s RecruitStatus) String() string {
	switch s {
	case Recruited:
		return "recruited"
	case AlreadyAlive:
		return "already_alive"
	case NoRecruits:
		return "no_recruits"
	default:
		return "unknown"
	}
}

// Config holds the dependencies of the manager
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

// Manager applies lifecycle transitions
type Manager struct {
	rules *rules.Rules
}

// New creates a manager
func New(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid lifecycle config")
	}

	return &Manager{rules: cfg.Rules}, nil
}

// NewPlayer returns the state created on a player's first command
func (m *Manager) NewPlayer(key entities.PlayerKey, displayName string, now time.Time) *entities.PlayerState {
	now = now.UTC()
	return &entities.PlayerState{
		ChatID:      key.ChatID,
		PlayerID:    key.PlayerID,
		DisplayName: displayName,
		PetName:     entities.DefaultPetName(m.rules.PetNameBase, key.PlayerID, 1),
		Weight:      m.rules.StartingWeight,
		Generation:  1,
		BornAt:      now,
		CreatedAt:   now,
	}
}

// AccrueRecruits tops up the recruit pool once per UTC day, whether or not
// the creature is alive. It reports whether the state changed.
func (m *Manager) AccrueRecruits(state *entities.PlayerState, today clock.Date) bool {
	if !state.LastRecruitDate.Before(today) {
		return false
	}

	state.LastRecruitDate = today
	pool := state.Recruits + m.rules.Recruitment.DailyIncrement
	if pool > m.rules.Recruitment.MaxPool {
		pool = m.rules.Recruitment.MaxPool
	}
	// a pool above the cap (rules lowered since) is left as is
	if pool > state.Recruits {
		state.Recruits = pool
	}
	return true
}

// ApplyWeight adds delta to the weight under the floor policy and kills the
// creature when weight reaches zero or below. It reports whether it died.
func (m *Manager) ApplyWeight(state *entities.PlayerState, inv entities.Inventory, delta int) bool {
	weight := state.Weight + delta
	if m.rules.WeightFloor == rules.WeightFloorClamp && weight < 1 {
		weight = 1
	}
	state.Weight = weight

	if weight <= 0 {
		m.Kill(state, inv)
		return true
	}
	return false
}

// Kill resets the creature to the dead state. Counters, dates, cooldowns and
// inventory are cleared; the recruit pool, names and generation survive.
// It returns the dropped inventory.
func (m *Manager) Kill(state *entities.PlayerState, inv entities.Inventory) map[string]int {
	state.Weight = 0

	state.FeedCount = 0
	state.LastFeedDate = ""
	state.ZonewalkCount = 0
	state.LastZonewalkDate = ""
	state.WheelCount = 0
	state.LastWheelDate = ""
	state.LastPetAt = time.Time{}
	state.LastFightAt = time.Time{}

	if inv == nil {
		return map[string]int{}
	}
	return inv.Clear()
}

// Recruit respawns a dead creature from the pool
func (m *Manager) Recruit(state *entities.PlayerState, now time.Time) RecruitStatus {
	if state.Alive() {
		return AlreadyAlive
	}
	if state.Recruits <= 0 {
		return NoRecruits
	}

	state.Recruits--
	state.Generation++
	state.Weight = m.rules.StartingWeight
	state.PetName = entities.DefaultPetName(m.rules.PetNameBase, state.PlayerID, state.Generation)
	state.BornAt = now.UTC()
	return Recruited
}
