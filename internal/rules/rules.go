// Package rules holds the versioned rule set of the pet economy: quota limits,
// cooldown windows, reward tables, the item catalog, and the policies that
// differed between game revisions (weight floor, combat resolution).
package rules

import (
	"time"

	"github.com/KirkDiggler/petbot/internal/entities"
)

// TableTotal is the sum every probability table must reach
const TableTotal = 100

// WeightFloorPolicy decides what happens when a delta would take weight below 1
type WeightFloorPolicy string

const (
	// WeightFloorNone applies deltas as-is; weight <= 0 kills the creature
	WeightFloorNone WeightFloorPolicy = "none"
	// WeightFloorClamp keeps weight at 1 or more, so only an instant zonewalk
	// death can kill (first game revision)
	WeightFloorClamp WeightFloorPolicy = "clamp"
)

// CombatPolicy decides how a duel winner is drawn
type CombatPolicy string

const (
	// CombatWeighted lets the heavier creature win with probability heavier/(heavier+lighter)
	CombatWeighted CombatPolicy = "weighted"
	// CombatCoinFlip ignores weight
	CombatCoinFlip CombatPolicy = "coinflip"
)

// RewardKind is the kind of prize on the wheel
type RewardKind string

// Wheel reward kinds
const (
	RewardNothing RewardKind = "nothing"
	RewardItem    RewardKind = "item"
	RewardWeight  RewardKind = "weight"
)

// Band is one entry of a probability table mapping to an inclusive integer range
type Band struct {
	Chance int `yaml:"chance"`
	Min    int `yaml:"min"`
	Max    int `yaml:"max"`
}

// LootCount is one entry of the "how many items" table
type LootCount struct {
	Count  int `yaml:"count"`
	Chance int `yaml:"chance"`
}

// LootEntry is one entry of the loot table
type LootEntry struct {
	Item   string `yaml:"item"`
	Chance int    `yaml:"chance"`
}

// WheelReward is one prize on the wheel. Amount is the item quantity for item
// rewards and the weight bonus for weight rewards.
type WheelReward struct {
	Kind   RewardKind `yaml:"kind"`
	Item   string     `yaml:"item,omitempty"`
	Amount int        `yaml:"amount,omitempty"`
	Chance int        `yaml:"chance"`
}

// Quotas are the per-UTC-day limits of the economic actions
type Quotas struct {
	FeedPerDay     int `yaml:"feed_per_day"`
	ZonewalkPerDay int `yaml:"zonewalk_per_day"`
	WheelPerDay    int `yaml:"wheel_per_day"`
}

// Cooldowns are the rolling windows of the physical/social actions
type Cooldowns struct {
	Pet   time.Duration `yaml:"pet"`
	Fight time.Duration `yaml:"fight"`
}

// Recruitment configures the recruit pool
type Recruitment struct {
	DailyIncrement int `yaml:"daily_increment"`
	MaxPool        int `yaml:"max_pool"`
}

// PetRules configures the chance of a weight change when petting
type PetRules struct {
	Chance   int `yaml:"chance"`
	MaxDelta int `yaml:"max_delta"`
}

// ZonewalkRules configures a loot run
type ZonewalkRules struct {
	DeathChance int         `yaml:"death_chance"`
	LootCounts  []LootCount `yaml:"loot_counts"`
	Loot        []LootEntry `yaml:"loot"`
	WeightDelta []Band      `yaml:"weight_delta"`
}

// CombatRules configures duels
type CombatRules struct {
	Policy  CombatPolicy `yaml:"policy"`
	MaxGain int          `yaml:"max_gain"`
	MaxLoss int          `yaml:"max_loss"`
}

// Rules is one complete, versioned rule set
type Rules struct {
	Version        string            `yaml:"version"`
	StartingWeight int               `yaml:"starting_weight"`
	PetNameBase    string            `yaml:"pet_name_base"`
	NameMaxLength  int               `yaml:"name_max_length"`
	TopLimit       int               `yaml:"top_limit"`
	WeightFloor    WeightFloorPolicy `yaml:"weight_floor"`

	Quotas      Quotas      `yaml:"quotas"`
	Cooldowns   Cooldowns   `yaml:"cooldowns"`
	Recruitment Recruitment `yaml:"recruitment"`

	Items    []entities.Item `yaml:"items"`
	FreeFeed []Band          `yaml:"free_feed"`
	Pet      PetRules        `yaml:"pet"`
	Zonewalk ZonewalkRules   `yaml:"zonewalk"`
	Wheel    []WheelReward   `yaml:"wheel"`
	Combat   CombatRules     `yaml:"combat"`

	catalog *Catalog
}

// Catalog returns the item catalog built during validation
func (r *Rules) Catalog() *Catalog {
	if r.catalog == nil {
		r.catalog = NewCatalog(r.Items)
	}
	return r.catalog
}
