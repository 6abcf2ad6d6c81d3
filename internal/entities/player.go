package entities

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/petbot/internal/pkg/clock"
)

// PlayerKey identifies one player's creature inside one chat
type PlayerKey struct {
	ChatID   int64 `json:"chat_id"`
	PlayerID int64 `json:"player_id"`
}

// String returns the key as chat:player
func (k PlayerKey) String() string {
	return fmt.Sprintf("%d:%d", k.ChatID, k.PlayerID)
}

// Less orders keys by chat, then player. Locks are always taken in this order.
func (k PlayerKey) Less(other PlayerKey) bool {
	if k.ChatID != other.ChatID {
		return k.ChatID < other.ChatID
	}
	return k.PlayerID < other.PlayerID
}

// PlayerState is the mutable game state of one player in one chat.
// A row is created on first contact and only ever reset in place.
type PlayerState struct {
	ChatID      int64  `json:"chat_id"`
	PlayerID    int64  `json:"player_id"`
	DisplayName string `json:"display_name"`
	PetName     string `json:"pet_name"`

	// Weight is the creature's only vitality metric; weight <= 0 means dead
	Weight int `json:"weight"`

	FeedCount        int        `json:"feed_count"`
	LastFeedDate     clock.Date `json:"last_feed_date,omitempty"`
	ZonewalkCount    int        `json:"zonewalk_count"`
	LastZonewalkDate clock.Date `json:"last_zonewalk_date,omitempty"`
	WheelCount       int        `json:"wheel_count"`
	LastWheelDate    clock.Date `json:"last_wheel_date,omitempty"`

	LastPetAt   time.Time `json:"last_pet_at"`
	LastFightAt time.Time `json:"last_fight_at"`

	Recruits        int        `json:"recruits"`
	LastRecruitDate clock.Date `json:"last_recruit_date,omitempty"`

	// Generation counts the creatures this player has raised, starting at 1
	Generation int       `json:"generation"`
	BornAt     time.Time `json:"born_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Key returns the identity of the state
func (p *PlayerState) Key() PlayerKey {
	return PlayerKey{ChatID: p.ChatID, PlayerID: p.PlayerID}
}

// Alive is derived from weight and never stored
func (p *PlayerState) Alive() bool {
	return p.Weight > 0
}

// DaysAlive returns the whole days elapsed since the current creature was born
func (p *PlayerState) DaysAlive(now time.Time) int {
	if p.BornAt.IsZero() || now.Before(p.BornAt) {
		return 0
	}
	return int(now.Sub(p.BornAt) / (24 * time.Hour))
}

// Clone returns a copy that shares nothing with p
func (p *PlayerState) Clone() *PlayerState {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// DefaultPetName derives a creature name from the player id.
// The first generation gets base_NNN, later ones get base_NNN_G.
func DefaultPetName(base string, playerID int64, generation int) string {
	suffix := playerID % 1000
	if suffix < 0 {
		suffix = -suffix
	}
	if generation <= 1 {
		return fmt.Sprintf("%s_%d", base, suffix)
	}
	return fmt.Sprintf("%s_%d_%d", base, suffix, generation)
}
