package rules

import (
	"time"

	"github.com/KirkDiggler/petbot/internal/entities"
)

// CanonicalVersion names the rule set returned by Default
const CanonicalVersion = "v3"

// Item ids of the default catalog
const (
	ItemBaton   = "baton"
	ItemSausage = "sausage"
	ItemCan     = "can"
	ItemVodka   = "vodka"
	ItemEnergy  = "energy"
)

// Default returns the canonical rule set: no weight floor while alive,
// weighted combat, six free-feed bands and 5% zonewalk death.
func Default() *Rules {
	r := &Rules{
		Version:        CanonicalVersion,
		StartingWeight: 10,
		PetNameBase:    "Piglet",
		NameMaxLength:  64,
		TopLimit:       10,
		WeightFloor:    WeightFloorNone,
		Quotas: Quotas{
			FeedPerDay:     1,
			ZonewalkPerDay: 1,
			WheelPerDay:    1,
		},
		Cooldowns: Cooldowns{
			Pet:   2 * time.Hour,
			Fight: 2 * time.Hour,
		},
		Recruitment: Recruitment{
			DailyIncrement: 1,
			MaxPool:        3,
		},
		Items: []entities.Item{
			{
				ID:        ItemBaton,
				Name:      "Baton",
				Aliases:   []string{"батон", "хліб", "bread"},
				FeedDelta: &entities.DeltaRange{Min: -5, Max: 5},
				Uses:      []entities.Capability{entities.CapabilityFeed},
			},
			{
				ID:        ItemSausage,
				Name:      "Sausage",
				Aliases:   []string{"ковбаса"},
				FeedDelta: &entities.DeltaRange{Min: -9, Max: 9},
				Uses:      []entities.Capability{entities.CapabilityFeed},
			},
			{
				ID:        ItemCan,
				Name:      "Canned breakfast",
				Aliases:   []string{"консерва", "сніданок"},
				FeedDelta: &entities.DeltaRange{Min: -15, Max: 15},
				Uses:      []entities.Capability{entities.CapabilityFeed},
			},
			{
				ID:        ItemVodka,
				Name:      "Vodka",
				Aliases:   []string{"горілка", "пацятки"},
				FeedDelta: &entities.DeltaRange{Min: -25, Max: 25},
				Uses:      []entities.Capability{entities.CapabilityFeed, entities.CapabilityZonewalk},
			},
			{
				ID:      ItemEnergy,
				Name:    "Energy drink",
				Aliases: []string{"енергетик", "енергітик"},
				Uses:    []entities.Capability{entities.CapabilityZonewalk},
			},
		},
		FreeFeed: []Band{
			{Chance: 5, Min: -15, Max: -8},
			{Chance: 15, Min: -7, Max: -1},
			{Chance: 10, Min: 0, Max: 0},
			{Chance: 40, Min: 1, Max: 5},
			{Chance: 25, Min: 6, Max: 12},
			{Chance: 5, Min: 13, Max: 25},
		},
		Pet: PetRules{
			Chance:   5,
			MaxDelta: 3,
		},
		Zonewalk: ZonewalkRules{
			DeathChance: 5,
			LootCounts: []LootCount{
				{Count: 0, Chance: 50},
				{Count: 1, Chance: 30},
				{Count: 2, Chance: 15},
				{Count: 3, Chance: 5},
			},
			Loot: []LootEntry{
				{Item: ItemBaton, Chance: 35},
				{Item: ItemSausage, Chance: 30},
				{Item: ItemCan, Chance: 13},
				{Item: ItemVodka, Chance: 7},
				{Item: ItemEnergy, Chance: 15},
			},
			WeightDelta: []Band{
				{Chance: 50, Min: 0, Max: 0},
				{Chance: 25, Min: -5, Max: -1},
				{Chance: 25, Min: 1, Max: 5},
			},
		},
		Wheel: []WheelReward{
			{Kind: RewardNothing, Chance: 40},
			{Kind: RewardItem, Item: ItemBaton, Amount: 2, Chance: 20},
			{Kind: RewardItem, Item: ItemSausage, Amount: 1, Chance: 15},
			{Kind: RewardItem, Item: ItemCan, Amount: 1, Chance: 10},
			{Kind: RewardItem, Item: ItemVodka, Amount: 1, Chance: 5},
			{Kind: RewardItem, Item: ItemEnergy, Amount: 1, Chance: 5},
			{Kind: RewardWeight, Amount: 5, Chance: 5},
		},
		Combat: CombatRules{
			Policy:  CombatWeighted,
			MaxGain: 5,
			MaxLoss: 5,
		},
	}
	r.catalog = NewCatalog(r.Items)
	return r
}
