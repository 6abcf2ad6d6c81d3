package game

import (
	"strings"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/quota"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

// chooseItem resolves the optional item argument of an action. A rejection
// outcome is returned when the argument names nothing usable.
func (o *Orchestrator) chooseItem(t *turn, capability entities.Capability) (*entities.Item, game.Outcome) {
	arg := strings.TrimSpace(t.input.Args)
	if arg == "" {
		return nil, ""
	}
	t.result.Item = arg

	item, ok := o.rules.Catalog().Resolve(arg)
	if !ok {
		return nil, game.OutcomeUnknownItem
	}
	t.result.Item = item.ID
	if !item.Can(capability) {
		return nil, game.OutcomeUnusableItem
	}
	if t.actor.Inventory.Quantity(item.ID) < 1 {
		return nil, game.OutcomeInsufficientItem
	}
	return item, ""
}

// held lists the inventory entries usable for capability
func (o *Orchestrator) held(inv entities.Inventory, capability entities.Capability) []entities.InventoryEntry {
	var entries []entities.InventoryEntry
	for _, id := range o.rules.Catalog().WithCapability(capability) {
		if qty := inv.Quantity(id); qty > 0 {
			entries = append(entries, entities.InventoryEntry{Item: id, Quantity: qty})
		}
	}
	return entries
}

func (o *Orchestrator) feed(t *turn) error {
	state, inv := t.actor.State, t.actor.Inventory

	item, outcome := o.chooseItem(t, entities.CapabilityFeed)
	if outcome != "" {
		t.reject(outcome)
		return nil
	}

	remaining, err := o.quota.DailyRemaining(state, quota.ActionFeed, t.today)
	if err != nil {
		return err
	}
	if remaining == 0 && item == nil {
		hint := o.held(inv, entities.CapabilityFeed)
		if len(hint) == 0 {
			t.reject(game.OutcomeNoFood)
			return nil
		}
		t.result.Hint = hint
		t.result.RetryAfter = untilNextDay(t.now)
		t.reject(game.OutcomeQuotaExceeded)
		return nil
	}

	if remaining > 0 {
		if err := o.quota.Consume(state, quota.ActionFeed, t.today); err != nil {
			return err
		}
		delta, err := o.engine.FreeFeedDelta()
		if err != nil {
			return err
		}
		if o.changeWeight(t, t.actor, game.Event{Kind: game.EventFreeFeed, Delta: delta}) {
			return nil
		}
	}

	if item == nil {
		return nil
	}
	if !inv.Remove(item.ID, 1) {
		return errors.Internalf("held %s vanished mid-action", item.ID)
	}
	delta, err := o.engine.ItemFeedDelta(item)
	if err != nil {
		return err
	}
	o.changeWeight(t, t.actor, game.Event{Kind: game.EventItemFeed, Item: item.ID, Quantity: 1, Delta: delta})
	return nil
}

func (o *Orchestrator) zonewalk(t *turn) error {
	state, inv := t.actor.State, t.actor.Inventory

	item, outcome := o.chooseItem(t, entities.CapabilityZonewalk)
	if outcome != "" {
		t.reject(outcome)
		return nil
	}

	remaining, err := o.quota.DailyRemaining(state, quota.ActionZonewalk, t.today)
	if err != nil {
		return err
	}
	if remaining == 0 && item == nil {
		t.result.Hint = o.held(inv, entities.CapabilityZonewalk)
		t.result.RetryAfter = untilNextDay(t.now)
		t.reject(game.OutcomeQuotaExceeded)
		return nil
	}

	if remaining > 0 {
		if err := o.quota.Consume(state, quota.ActionZonewalk, t.today); err != nil {
			return err
		}
		died, err := o.walk(t, "")
		if err != nil || died {
			return err
		}
	}

	if item == nil {
		return nil
	}
	if !inv.Remove(item.ID, 1) {
		return errors.Internalf("held %s vanished mid-action", item.ID)
	}
	_, err = o.walk(t, item.ID)
	return err
}

// walk runs one loot run. item is the consumable that paid for an extra run.
func (o *Orchestrator) walk(t *turn, item string) (bool, error) {
	snap := t.actor
	outcome, err := o.engine.Zonewalk()
	if err != nil {
		return false, err
	}

	if outcome.Died {
		before := snap.State.Weight
		lost := o.lifecycle.Kill(snap.State, snap.Inventory)
		t.record(game.Event{Kind: game.EventZonewalkDeath, Item: item, WeightBefore: before})
		t.died(snap, lost)
		return true, nil
	}

	if len(outcome.Loot) > 0 {
		loot := make(map[string]int, len(outcome.Loot))
		for _, id := range outcome.Loot {
			if err := snap.Inventory.Add(id, 1); err != nil {
				return false, err
			}
			loot[id]++
		}
		t.record(game.Event{Kind: game.EventLoot, Item: item, Items: loot})
	}

	return o.changeWeight(t, snap, game.Event{Kind: game.EventZonewalk, Item: item, Delta: outcome.WeightDelta}), nil
}
