package game

import (
	"github.com/KirkDiggler/petbot/internal/combat"
	"github.com/KirkDiggler/petbot/internal/quota"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

// fight duels the actor against the target. Both snapshots are part of the
// same transaction, so the loot transfer and the loser's death commit together.
// The target's recruit pool is left alone; it accrues when the target acts.
func (o *Orchestrator) fight(t *turn) error {
	if t.target == nil || !t.target.Exists() {
		t.reject(game.OutcomeUnknownTarget)
		return nil
	}

	attacker, defender := t.actor.State, t.target.State
	t.result.Opponent = &game.OpponentResult{
		PlayerID:     defender.PlayerID,
		DisplayName:  defender.DisplayName,
		PetName:      defender.PetName,
		WeightBefore: defender.Weight,
		Weight:       defender.Weight,
	}

	if !defender.Alive() {
		t.reject(game.OutcomeTargetDead)
		return nil
	}

	attackerWait, err := o.quota.CooldownRemaining(attacker, quota.ActionFight, t.now)
	if err != nil {
		return err
	}
	defenderWait, err := o.quota.CooldownRemaining(defender, quota.ActionFight, t.now)
	if err != nil {
		return err
	}
	if wait := max(attackerWait, defenderWait); wait > 0 {
		t.result.RetryAfter = wait
		t.reject(game.OutcomeCooldownActive)
		return nil
	}

	outcome, err := o.combat.Resolve(attacker, defender)
	if err != nil {
		return err
	}
	if err := o.quota.StartCooldown(attacker, quota.ActionFight, t.now); err != nil {
		return err
	}
	if err := o.quota.StartCooldown(defender, quota.ActionFight, t.now); err != nil {
		return err
	}

	actorSide := &combat.Participant{State: attacker, Inventory: t.actor.Inventory}
	targetSide := &combat.Participant{State: defender, Inventory: t.target.Inventory}
	attackerBefore := attacker.Weight
	o.combat.Apply(actorSide, targetSide, outcome)

	kind, delta := game.EventFightLost, -outcome.LoserLoss
	if outcome.AttackerWon {
		kind, delta = game.EventFightWon, outcome.WinnerGain
	}
	t.record(game.Event{
		Kind:         kind,
		Name:         defender.PetName,
		WeightBefore: attackerBefore,
		Weight:       attacker.Weight,
		Delta:        delta,
	})
	if len(outcome.Looted) > 0 {
		t.record(game.Event{Kind: game.EventLooted, Items: outcome.Looted})
	}
	if outcome.LoserDied {
		// the inventory already went to the winner
		t.died(t.snapshotOf(combat.Loser(actorSide, targetSide, outcome)), nil)
	}

	t.result.Opponent.Weight = defender.Weight
	t.result.Opponent.Died = !defender.Alive()
	t.emit(EventTypeFight, attacker, defender)
	return nil
}
