// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
)

// PlayerBuilder provides a fluent interface for building test PlayerState instances
type PlayerBuilder struct {
	state *entities.PlayerState
}

// NewPlayerBuilder creates a new builder with a living first-generation creature
func NewPlayerBuilder() *PlayerBuilder {
	born := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	return &PlayerBuilder{
		state: &entities.PlayerState{
			ChatID:      -1001234567890,
			PlayerID:    4242,
			DisplayName: "Stalker",
			PetName:     entities.DefaultPetName("Piglet", 4242, 1),
			Weight:      10,
			Generation:  1,
			BornAt:      born,
			CreatedAt:   born,
		},
	}
}

// WithKey sets chat and player ids and re-derives the default pet name
func (b *PlayerBuilder) WithKey(chatID, playerID int64) *PlayerBuilder {
	b.state.ChatID = chatID
	b.state.PlayerID = playerID
	b.state.PetName = entities.DefaultPetName("Piglet", playerID, b.state.Generation)
	return b
}

// WithDisplayName sets the player's display name
func (b *PlayerBuilder) WithDisplayName(name string) *PlayerBuilder {
	b.state.DisplayName = name
	return b
}

// WithPetName sets the creature's name
func (b *PlayerBuilder) WithPetName(name string) *PlayerBuilder {
	b.state.PetName = name
	return b
}

// WithWeight sets the weight
func (b *PlayerBuilder) WithWeight(weight int) *PlayerBuilder {
	b.state.Weight = weight
	return b
}

// Dead sets the weight to zero
func (b *PlayerBuilder) Dead() *PlayerBuilder {
	b.state.Weight = 0
	return b
}

// WithRecruits sets the recruit pool and the date it was last topped up
func (b *PlayerBuilder) WithRecruits(n int, accrued clock.Date) *PlayerBuilder {
	b.state.Recruits = n
	b.state.LastRecruitDate = accrued
	return b
}

// FedOn marks the daily feed as used count times on date
func (b *PlayerBuilder) FedOn(date clock.Date, count int) *PlayerBuilder {
	b.state.LastFeedDate = date
	b.state.FeedCount = count
	return b
}

// ZonewalkedOn marks the daily zonewalk as used count times on date
func (b *PlayerBuilder) ZonewalkedOn(date clock.Date, count int) *PlayerBuilder {
	b.state.LastZonewalkDate = date
	b.state.ZonewalkCount = count
	return b
}

// SpunOn marks the daily wheel as used count times on date
func (b *PlayerBuilder) SpunOn(date clock.Date, count int) *PlayerBuilder {
	b.state.LastWheelDate = date
	b.state.WheelCount = count
	return b
}

// PettedAt sets the last pet time
func (b *PlayerBuilder) PettedAt(t time.Time) *PlayerBuilder {
	b.state.LastPetAt = t
	return b
}

// FoughtAt sets the last fight time
func (b *PlayerBuilder) FoughtAt(t time.Time) *PlayerBuilder {
	b.state.LastFightAt = t
	return b
}

// WithGeneration sets the generation counter
func (b *PlayerBuilder) WithGeneration(g int) *PlayerBuilder {
	b.state.Generation = g
	return b
}

// BornAt sets the birth time of the current creature
func (b *PlayerBuilder) BornAt(t time.Time) *PlayerBuilder {
	b.state.BornAt = t
	return b
}

// Build returns a copy of the built state
func (b *PlayerBuilder) Build() *entities.PlayerState {
	return b.state.Clone()
}
