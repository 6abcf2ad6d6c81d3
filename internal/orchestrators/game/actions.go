package game

import (
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/lifecycle"
	"github.com/KirkDiggler/petbot/internal/quota"
	"github.com/KirkDiggler/petbot/internal/rules"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

func (o *Orchestrator) wheel(t *turn) error {
	state, inv := t.actor.State, t.actor.Inventory

	remaining, err := o.quota.DailyRemaining(state, quota.ActionWheel, t.today)
	if err != nil {
		return err
	}
	if remaining == 0 {
		t.result.RetryAfter = untilNextDay(t.now)
		t.reject(game.OutcomeQuotaExceeded)
		return nil
	}
	if err := o.quota.Consume(state, quota.ActionWheel, t.today); err != nil {
		return err
	}

	reward, err := o.engine.Wheel()
	if err != nil {
		return err
	}

	switch reward.Kind {
	case rules.RewardNothing:
		t.record(game.Event{Kind: game.EventWheelNothing})
	case rules.RewardItem:
		if err := inv.Add(reward.Item, reward.Amount); err != nil {
			return errors.Wrapf(err, "failed to grant %s", reward.Item)
		}
		t.record(game.Event{Kind: game.EventWheelItem, Item: reward.Item, Quantity: reward.Amount})
	case rules.RewardWeight:
		o.changeWeight(t, t.actor, game.Event{Kind: game.EventWheelWeight, Delta: reward.Amount})
	default:
		return errors.Internalf("unknown wheel reward %q", reward.Kind)
	}
	return nil
}

func (o *Orchestrator) pet(t *turn) error {
	state := t.actor.State

	wait, err := o.quota.CooldownRemaining(state, quota.ActionPet, t.now)
	if err != nil {
		return err
	}
	if wait > 0 {
		t.result.RetryAfter = wait
		t.reject(game.OutcomeCooldownActive)
		return nil
	}
	if err := o.quota.StartCooldown(state, quota.ActionPet, t.now); err != nil {
		return err
	}

	delta, changed, err := o.engine.PetDelta()
	if err != nil {
		return err
	}
	if !changed {
		t.record(game.Event{Kind: game.EventPet, WeightBefore: state.Weight, Weight: state.Weight})
		return nil
	}
	o.changeWeight(t, t.actor, game.Event{Kind: game.EventPet, Delta: delta})
	return nil
}

// rename works while dead too
func (o *Orchestrator) rename(t *turn) error {
	name := strings.TrimSpace(t.input.Args)
	if name == "" {
		t.result.Reason = "name is required"
		t.reject(game.OutcomeInvalidArgument)
		return nil
	}
	if utf8.RuneCountInString(name) > o.rules.NameMaxLength {
		name = strings.TrimSpace(string([]rune(name)[:o.rules.NameMaxLength]))
	}

	t.actor.State.PetName = name
	t.record(game.Event{Kind: game.EventRenamed, Name: name})
	return nil
}

func (o *Orchestrator) recruit(t *turn) error {
	switch o.lifecycle.Recruit(t.actor.State, t.now) {
	case lifecycle.AlreadyAlive:
		t.reject(game.OutcomeAlreadyAlive)
	case lifecycle.NoRecruits:
		t.reject(game.OutcomeNoRecruits)
	case lifecycle.Recruited:
		state := t.actor.State
		t.record(game.Event{Kind: game.EventRecruited, Name: state.PetName, Weight: state.Weight})
		t.emit(EventTypeRecruited, state, nil)
	}
	return nil
}
