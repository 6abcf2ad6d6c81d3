// Package game defines the interface for player-facing game actions
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/petbot/internal/services/game Service

import (
	"context"
	"time"

	"github.com/KirkDiggler/petbot/internal/entities"
)

// Service defines the interface for game actions
type Service interface {
	// Handle runs one player action. Game rejections and storage failures are
	// reported through the result Outcome; an error means the input was unusable.
	Handle(ctx context.Context, input *HandleInput) (*HandleOutput, error)
}

// ActionKind names a player-facing action
type ActionKind string

// Actions
const (
	ActionFeed          ActionKind = "feed"
	ActionPet           ActionKind = "pet"
	ActionZonewalk      ActionKind = "zonewalk"
	ActionWheel         ActionKind = "wheel"
	ActionName          ActionKind = "name"
	ActionRecruit       ActionKind = "recruit"
	ActionCheckRecruits ActionKind = "check_recruits"
	ActionFight         ActionKind = "fight"
	ActionInventory     ActionKind = "inventory"
	ActionTop           ActionKind = "top"
)

// Valid reports whether k is a known action
func (k ActionKind) Valid() bool {
	switch k {
	case ActionFeed, ActionPet, ActionZonewalk, ActionWheel, ActionName,
		ActionRecruit, ActionCheckRecruits, ActionFight, ActionInventory, ActionTop:
		return true
	}
	return false
}

// Outcome classifies how an action ended
type Outcome string

// Outcomes
const (
	OutcomeOK               Outcome = "ok"
	OutcomeQuotaExceeded    Outcome = "quota_exceeded"
	OutcomeCooldownActive   Outcome = "cooldown_active"
	OutcomeInsufficientItem Outcome = "insufficient_item"
	OutcomeUnknownItem      Outcome = "unknown_item"
	OutcomeUnusableItem     Outcome = "unusable_item"
	OutcomeUnknownTarget    Outcome = "unknown_target"
	OutcomeDeadCreature     Outcome = "dead_creature"
	OutcomeNoFood           Outcome = "no_food"
	OutcomeNoRecruits       Outcome = "no_recruits"
	OutcomeAlreadyAlive     Outcome = "already_alive"
	OutcomeTargetDead       Outcome = "target_dead"
	OutcomeInvalidArgument  Outcome = "invalid_argument"
	OutcomeFailure          Outcome = "failure"
)

// EventKind names one step of an action's narrative
type EventKind string

// Events
const (
	EventFreeFeed      EventKind = "free_feed"
	EventItemFeed      EventKind = "item_feed"
	EventZonewalk      EventKind = "zonewalk"
	EventZonewalkDeath EventKind = "zonewalk_death"
	EventLoot          EventKind = "loot"
	EventWheelNothing  EventKind = "wheel_nothing"
	EventWheelItem     EventKind = "wheel_item"
	EventWheelWeight   EventKind = "wheel_weight"
	EventPet           EventKind = "pet"
	EventRenamed       EventKind = "renamed"
	EventRecruited     EventKind = "recruited"
	EventFightWon      EventKind = "fight_won"
	EventFightLost     EventKind = "fight_lost"
	EventLooted        EventKind = "looted"
	EventDied          EventKind = "died"
)

// Event is one step of an action's narrative
type Event struct {
	Kind EventKind

	// Item is the consumed or granted item, when there is one
	Item     string
	Quantity int

	// Items lists loot gained or lost in one step
	Items map[string]int

	// WeightBefore and Weight bracket the weight change of the step
	WeightBefore int
	Weight       int
	Delta        int

	// Name is the new pet name, or the opponent's pet name in a fight
	Name string
}

// HandleInput defines the request for one action
type HandleInput struct {
	Action      ActionKind
	ChatID      int64
	PlayerID    int64
	DisplayName string

	// Args is the raw argument text after the command
	Args string

	// TargetPlayerID is the opponent of a fight
	TargetPlayerID int64
}

// HandleOutput defines the response for one action
type HandleOutput struct {
	Result *ActionResult
}

// ActionResult is the structured result the transport renders
type ActionResult struct {
	ActionID string
	Action   ActionKind
	Outcome  Outcome
	Events   []Event

	// Reason explains InvalidArgument and Failure outcomes
	Reason string

	PetName      string
	WeightBefore int
	Weight       int
	DaysAlive    int
	Died         bool
	Recruits     int

	// Item is the argument an item outcome refers to
	Item string

	InventoryDelta map[string]int
	Inventory      []entities.InventoryEntry

	// Hint lists held items that could be used for this action
	Hint []entities.InventoryEntry

	// RetryAfter is set for quota and cooldown rejections
	RetryAfter time.Duration

	Opponent    *OpponentResult
	Leaderboard []LeaderboardEntry
}

// OpponentResult describes the other side of a fight
type OpponentResult struct {
	PlayerID     int64
	DisplayName  string
	PetName      string
	WeightBefore int
	Weight       int
	Died         bool
}

// LeaderboardEntry is one row of the top list
type LeaderboardEntry struct {
	Rank        int
	PlayerID    int64
	DisplayName string
	PetName     string
	Weight      int
	DaysAlive   int
}
