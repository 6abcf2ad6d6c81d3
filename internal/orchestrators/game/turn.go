package game

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/petbot/internal/combat"
	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
	playerrepo "github.com/KirkDiggler/petbot/internal/repositories/player"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

// Toolkit event types published after a successful commit
const (
	EventTypeDied      = "pet.died"
	EventTypeRecruited = "pet.recruited"
	EventTypeFight     = "pet.fight"
)

// turn is the working state of one transaction attempt
type turn struct {
	input *game.HandleInput
	now   time.Time
	today clock.Date

	actor  *playerrepo.Snapshot
	target *playerrepo.Snapshot

	weightBefore    int
	inventoryBefore entities.Inventory
	diedNow         bool

	result    *game.ActionResult
	published []events.Event
}

func newTurn(input *game.HandleInput, actionID string, now time.Time, actor *playerrepo.Snapshot) *turn {
	return &turn{
		input: input,
		now:   now,
		today: clock.DateOf(now),
		actor: actor,
		result: &game.ActionResult{
			ActionID: actionID,
			Action:   input.Action,
			Outcome:  game.OutcomeOK,
		},
	}
}

func (t *turn) reject(outcome game.Outcome) {
	t.result.Outcome = outcome
}

func (t *turn) record(event game.Event) {
	t.result.Events = append(t.result.Events, event)
}

// died records the death of snap. lost is the inventory it held before dying.
func (t *turn) died(snap *playerrepo.Snapshot, lost map[string]int) {
	if len(lost) == 0 {
		lost = nil
	}
	t.record(game.Event{Kind: game.EventDied, Items: lost, Weight: snap.State.Weight})
	if snap == t.actor {
		t.diedNow = true
	}
	t.emit(EventTypeDied, snap.State, nil)
}

func (t *turn) emit(eventType string, source, target *entities.PlayerState) {
	var targetEntity core.Entity
	if target != nil {
		targetEntity = entities.WrapPet(target.Clone())
	}
	t.published = append(t.published, events.NewGameEvent(eventType, entities.WrapPet(source.Clone()), targetEntity))
}

// snapshotOf returns the snapshot holding p's state
func (t *turn) snapshotOf(p *combat.Participant) *playerrepo.Snapshot {
	if t.target != nil && p.State == t.target.State {
		return t.target
	}
	return t.actor
}

// finish copies the actor's final state into the result
func (t *turn) finish() {
	st, inv := t.actor.State, t.actor.Inventory
	r := t.result

	r.PetName = st.PetName
	r.WeightBefore = t.weightBefore
	r.Weight = st.Weight
	if st.Alive() {
		r.DaysAlive = st.DaysAlive(t.now)
	}
	r.Died = t.diedNow
	r.Recruits = st.Recruits
	r.Inventory = inv.Items()
	if delta := inv.Delta(t.inventoryBefore); len(delta) > 0 {
		r.InventoryDelta = delta
	}
}
