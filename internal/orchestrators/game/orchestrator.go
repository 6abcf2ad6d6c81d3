// Package game implements the game orchestrator: it runs each player action
// inside one storage transaction and reports a structured result
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/petbot/internal/combat"
	"github.com/KirkDiggler/petbot/internal/economy"
	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/lifecycle"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
	"github.com/KirkDiggler/petbot/internal/pkg/idgen"
	"github.com/KirkDiggler/petbot/internal/quota"
	playerrepo "github.com/KirkDiggler/petbot/internal/repositories/player"
	"github.com/KirkDiggler/petbot/internal/rules"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

// Config holds the dependencies for the game orchestrator
type Config struct {
	PlayerRepo  playerrepo.Repository
	Clock       clock.Clock
	Roller      dice.Roller
	Rules       *rules.Rules
	IDGenerator idgen.Generator

	// EventBus receives pet.died, pet.recruited and pet.fight after commit. Optional.
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the game.Service interface
type Orchestrator struct {
	playerRepo playerrepo.Repository
	clock      clock.Clock
	rules      *rules.Rules
	idGen      idgen.Generator
	eventBus   events.EventBus

	engine    *economy.Engine
	quota     *quota.Tracker
	lifecycle *lifecycle.Manager
	combat    *combat.Resolver
}

// New creates a new game orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	engine, err := economy.New(&economy.Config{Roller: cfg.Roller, Rules: cfg.Rules})
	if err != nil {
		return nil, err
	}
	tracker, err := quota.New(&quota.Config{Rules: cfg.Rules})
	if err != nil {
		return nil, err
	}
	manager, err := lifecycle.New(&lifecycle.Config{Rules: cfg.Rules})
	if err != nil {
		return nil, err
	}
	resolver, err := combat.New(&combat.Config{Roller: cfg.Roller, Rules: cfg.Rules, Lifecycle: manager})
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		playerRepo: cfg.PlayerRepo,
		clock:      cfg.Clock,
		rules:      cfg.Rules,
		idGen:      cfg.IDGenerator,
		eventBus:   cfg.EventBus,
		engine:     engine,
		quota:      tracker,
		lifecycle:  manager,
		combat:     resolver,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ game.Service = (*Orchestrator)(nil)

// Handle runs one player action
func (o *Orchestrator) Handle(ctx context.Context, input *game.HandleInput) (*game.HandleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if !input.Action.Valid() {
		vb.Fieldf("Action", "unknown action %q", input.Action)
	}
	if input.ChatID == 0 {
		vb.RequiredField("ChatID")
	}
	if input.PlayerID == 0 && input.Action != game.ActionTop {
		vb.RequiredField("PlayerID")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now().UTC()
	actionID := o.idGen.Generate()

	var result *game.ActionResult
	if input.Action == game.ActionTop {
		result = o.top(ctx, input, actionID, now)
	} else {
		result = o.transact(ctx, input, actionID, now)
	}

	slog.InfoContext(ctx, "action handled",
		"action_id", result.ActionID,
		"action", result.Action,
		"chat_id", input.ChatID,
		"player_id", input.PlayerID,
		"outcome", result.Outcome)

	return &game.HandleOutput{Result: result}, nil
}

// transact runs a state-changing action in one storage transaction
func (o *Orchestrator) transact(ctx context.Context, input *game.HandleInput, actionID string, now time.Time) *game.ActionResult {
	actorKey := entities.PlayerKey{ChatID: input.ChatID, PlayerID: input.PlayerID}
	keys := []entities.PlayerKey{actorKey}

	var targetKey *entities.PlayerKey
	if input.Action == game.ActionFight && input.TargetPlayerID != 0 && input.TargetPlayerID != input.PlayerID {
		targetKey = &entities.PlayerKey{ChatID: input.ChatID, PlayerID: input.TargetPlayerID}
		keys = append(keys, *targetKey)
	}

	var t *turn
	_, err := o.playerRepo.WithPlayers(ctx, &playerrepo.WithPlayersInput{
		Keys: keys,
		Fn: func(_ context.Context, snapshots playerrepo.Snapshots) error {
			// Fn reruns on conflict; every attempt starts from a clean turn
			t = newTurn(input, actionID, now, snapshots[actorKey])
			if targetKey != nil {
				t.target = snapshots[*targetKey]
			}
			o.observe(t)
			if err := o.apply(t); err != nil {
				return err
			}
			t.finish()
			return nil
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "action failed",
			"action_id", actionID,
			"action", input.Action,
			"chat_id", input.ChatID,
			"player_id", input.PlayerID,
			"error", err)
		return failure(input.Action, actionID, err)
	}

	o.publish(ctx, t.published)
	return t.result
}

func (o *Orchestrator) apply(t *turn) error {
	switch t.input.Action {
	case game.ActionName:
		return o.rename(t)
	case game.ActionRecruit:
		return o.recruit(t)
	case game.ActionCheckRecruits:
		return nil
	}

	if !t.actor.State.Alive() {
		t.reject(game.OutcomeDeadCreature)
		return nil
	}

	switch t.input.Action {
	case game.ActionFeed:
		return o.feed(t)
	case game.ActionZonewalk:
		return o.zonewalk(t)
	case game.ActionWheel:
		return o.wheel(t)
	case game.ActionPet:
		return o.pet(t)
	case game.ActionFight:
		return o.fight(t)
	case game.ActionInventory:
		return nil
	default:
		return errors.InvalidArgumentf("unsupported action %q", t.input.Action)
	}
}

// observe creates the actor on first contact, refreshes its display name and
// accrues the recruit pool. These are the only writes a rejected action keeps.
func (o *Orchestrator) observe(t *turn) {
	snap := t.actor
	if !snap.Exists() {
		snap.State = o.lifecycle.NewPlayer(snap.Key, t.input.DisplayName, t.now)
	}
	if t.input.DisplayName != "" {
		snap.State.DisplayName = t.input.DisplayName
	}
	o.lifecycle.AccrueRecruits(snap.State, t.today)

	t.weightBefore = snap.State.Weight
	t.inventoryBefore = snap.Inventory.Clone()
}

// changeWeight applies delta to the snapshot, records the step and reports
// whether the creature died
func (o *Orchestrator) changeWeight(t *turn, snap *playerrepo.Snapshot, event game.Event) bool {
	lost := snap.Inventory.Clone()
	event.WeightBefore = snap.State.Weight

	died := o.lifecycle.ApplyWeight(snap.State, snap.Inventory, event.Delta)

	event.Weight = snap.State.Weight
	if died {
		event.Weight = event.WeightBefore + event.Delta
	}
	t.record(event)
	if died {
		t.died(snap, lost)
	}
	return died
}

func failure(action game.ActionKind, actionID string, err error) *game.ActionResult {
	var reason string
	switch code := errors.GetCode(err); {
	case errors.IsAborted(err):
		reason = "too many concurrent actions, try again"
	case code.Retryable():
		reason = "storage unavailable"
	case errors.IsInternal(err):
		reason = "internal error"
	default:
		reason = "stored data could not be read"
	}
	return &game.ActionResult{
		ActionID: actionID,
		Action:   action,
		Outcome:  game.OutcomeFailure,
		Reason:   reason,
	}
}

// untilNextDay is the wait until the next UTC midnight resets daily quotas
func untilNextDay(now time.Time) time.Duration {
	midnight := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	return midnight.Sub(now)
}
