// Package combat resolves duels between two living creatures
package combat

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/petbot/internal/economy"
	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/lifecycle"
	"github.com/KirkDiggler/petbot/internal/rules"
)

// Config holds the dependencies of the resolver
type Config struct {
	Roller    dice.Roller
	Rules     *rules.Rules
	Lifecycle *lifecycle.Manager
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.Lifecycle == nil {
		vb.RequiredField("Lifecycle")
	}

	return vb.Build()
}

// Resolver draws and applies duel outcomes
type Resolver struct {
	roller    dice.Roller
	rules     *rules.Rules
	lifecycle *lifecycle.Manager
}

// New creates a resolver
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid combat config")
	}

	return &Resolver{
		roller:    cfg.Roller,
		rules:     cfg.Rules,
		lifecycle: cfg.Lifecycle,
	}, nil
}

// Participant is one side of a duel with the inventory that can be looted
type Participant struct {
	State     *entities.PlayerState
	Inventory entities.Inventory
}

// Outcome is a drawn duel result
type Outcome struct {
	AttackerWon bool
	WinnerGain  int
	LoserLoss   int

	// Set by Apply
	LoserDied bool
	Looted    map[string]int
}

// Resolve draws the winner and the weight changes. Neither state is modified.
func (r *Resolver) Resolve(attacker, defender *entities.PlayerState) (*Outcome, error) {
	if attacker == nil || defender == nil {
		return nil, errors.InvalidArgument("both participants are required")
	}
	if !attacker.Alive() || !defender.Alive() {
		return nil, errors.FailedPrecondition("both creatures must be alive")
	}

	attackerWon, err := r.attackerWins(attacker.Weight, defender.Weight)
	if err != nil {
		return nil, err
	}

	gain, err := economy.RollRange(r.roller, 1, r.rules.Combat.MaxGain)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll winner gain")
	}
	loss, err := economy.RollRange(r.roller, 1, r.rules.Combat.MaxLoss)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll loser loss")
	}

	return &Outcome{
		AttackerWon: attackerWon,
		WinnerGain:  gain,
		LoserLoss:   loss,
	}, nil
}

// Apply mutates both participants. A loser that reaches zero weight hands its
// whole inventory to the winner before it dies.
func (r *Resolver) Apply(attacker, defender *Participant, outcome *Outcome) {
	winner, loser := Winner(attacker, defender, outcome), Loser(attacker, defender, outcome)

	r.lifecycle.ApplyWeight(winner.State, winner.Inventory, outcome.WinnerGain)

	remaining := loser.State.Weight - outcome.LoserLoss
	if remaining <= 0 && r.rules.WeightFloor != rules.WeightFloorClamp {
		outcome.Looted = loser.Inventory.TransferAll(winner.Inventory)
	}
	outcome.LoserDied = r.lifecycle.ApplyWeight(loser.State, loser.Inventory, -outcome.LoserLoss)
}

// Winner returns the winning participant of outcome
func Winner(attacker, defender *Participant, outcome *Outcome) *Participant {
	if outcome.AttackerWon {
		return attacker
	}
	return defender
}

// Loser returns the losing participant of outcome
func Loser(attacker, defender *Participant, outcome *Outcome) *Participant {
	if outcome.AttackerWon {
		return defender
	}
	return attacker
}

// attackerWins draws the winner. Under the weighted policy a single die of
// size attacker+defender is rolled and the attacker wins on rolls up to its
// own weight, so the heavier side wins with probability heavier/(heavier+lighter).
func (r *Resolver) attackerWins(attackerWeight, defenderWeight int) (bool, error) {
	if r.rules.Combat.Policy == rules.CombatCoinFlip {
		roll, err := r.roller.Roll(2)
		if err != nil {
			return false, errors.Wrap(err, "failed to flip coin")
		}
		return roll == 1, nil
	}

	roll, err := r.roller.Roll(attackerWeight + defenderWeight)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll duel")
	}
	return roll <= attackerWeight, nil
}
