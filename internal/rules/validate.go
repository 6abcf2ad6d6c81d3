package rules

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
)

// Validate checks the rule set and rebuilds the item catalog
func (r *Rules) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("version", r.Version, vb)
	errors.ValidatePositive("starting_weight", r.StartingWeight, vb)
	errors.ValidateRequired("pet_name_base", r.PetNameBase, vb)
	errors.ValidatePositive("name_max_length", r.NameMaxLength, vb)
	errors.ValidatePositive("top_limit", r.TopLimit, vb)
	errors.ValidateEnum("weight_floor", string(r.WeightFloor),
		[]string{string(WeightFloorNone), string(WeightFloorClamp)}, vb)

	validateNonNegative("quotas.feed_per_day", r.Quotas.FeedPerDay, vb)
	validateNonNegative("quotas.zonewalk_per_day", r.Quotas.ZonewalkPerDay, vb)
	validateNonNegative("quotas.wheel_per_day", r.Quotas.WheelPerDay, vb)

	if r.Cooldowns.Pet < 0 {
		vb.Field("cooldowns.pet", "must not be negative")
	}
	if r.Cooldowns.Fight < 0 {
		vb.Field("cooldowns.fight", "must not be negative")
	}

	validateNonNegative("recruitment.daily_increment", r.Recruitment.DailyIncrement, vb)
	validateNonNegative("recruitment.max_pool", r.Recruitment.MaxPool, vb)

	r.validateItems(vb)
	r.catalog = NewCatalog(r.Items)

	validateBands("free_feed", r.FreeFeed, vb)

	errors.ValidateRange("pet.chance", r.Pet.Chance, 0, TableTotal, vb)
	errors.ValidatePositive("pet.max_delta", r.Pet.MaxDelta, vb)

	r.validateZonewalk(vb)
	r.validateWheel(vb)

	errors.ValidateEnum("combat.policy", string(r.Combat.Policy),
		[]string{string(CombatWeighted), string(CombatCoinFlip)}, vb)
	errors.ValidatePositive("combat.max_gain", r.Combat.MaxGain, vb)
	errors.ValidatePositive("combat.max_loss", r.Combat.MaxLoss, vb)

	return vb.Build()
}

func (r *Rules) validateItems(vb *errors.ValidationBuilder) {
	if len(r.Items) == 0 {
		vb.RequiredField("items")
		return
	}

	ids := make(map[string]bool, len(r.Items))
	names := make(map[string]string)
	for i, item := range r.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.ID) == "" {
			vb.RequiredField(field + ".id")
			continue
		}
		if ids[item.ID] {
			vb.Fieldf(field+".id", "duplicate item id %q", item.ID)
		}
		ids[item.ID] = true

		for _, name := range append([]string{item.ID}, item.Aliases...) {
			key := normalize(name)
			if owner, taken := names[key]; taken && owner != item.ID {
				vb.Fieldf(field+".aliases", "%q already names %q", name, owner)
				continue
			}
			names[key] = item.ID
		}

		if len(item.Uses) == 0 {
			vb.Field(field+".uses", "must list at least one capability")
		}
		for _, use := range item.Uses {
			errors.ValidateEnum(field+".uses", string(use), []string{
				string(entities.CapabilityFeed),
				string(entities.CapabilityZonewalk),
				string(entities.CapabilityUseOnPet),
			}, vb)
		}
		if item.Can(entities.CapabilityFeed) {
			switch {
			case item.FeedDelta == nil:
				vb.Field(field+".feed_delta", "is required for edible items")
			case item.FeedDelta.Min > item.FeedDelta.Max:
				vb.Fieldf(field+".feed_delta", "min %d exceeds max %d", item.FeedDelta.Min, item.FeedDelta.Max)
			}
		}
	}
}

func (r *Rules) validateZonewalk(vb *errors.ValidationBuilder) {
	errors.ValidateRange("zonewalk.death_chance", r.Zonewalk.DeathChance, 0, TableTotal, vb)

	total := 0
	for i, lc := range r.Zonewalk.LootCounts {
		if lc.Count < 0 {
			vb.Fieldf(fmt.Sprintf("zonewalk.loot_counts[%d].count", i), "must not be negative, got %d", lc.Count)
		}
		total += validateChance(fmt.Sprintf("zonewalk.loot_counts[%d].chance", i), lc.Chance, vb)
	}
	validateTotal("zonewalk.loot_counts", total, vb)

	total = 0
	for i, entry := range r.Zonewalk.Loot {
		field := fmt.Sprintf("zonewalk.loot[%d]", i)
		if _, ok := r.catalog.Get(entry.Item); !ok {
			vb.Fieldf(field+".item", "unknown item %q", entry.Item)
		}
		total += validateChance(field+".chance", entry.Chance, vb)
	}
	validateTotal("zonewalk.loot", total, vb)

	validateBands("zonewalk.weight_delta", r.Zonewalk.WeightDelta, vb)
}

func (r *Rules) validateWheel(vb *errors.ValidationBuilder) {
	total := 0
	for i, reward := range r.Wheel {
		field := fmt.Sprintf("wheel[%d]", i)
		total += validateChance(field+".chance", reward.Chance, vb)

		switch reward.Kind {
		case RewardNothing:
		case RewardItem:
			if _, ok := r.catalog.Get(reward.Item); !ok {
				vb.Fieldf(field+".item", "unknown item %q", reward.Item)
			}
			errors.ValidatePositive(field+".amount", reward.Amount, vb)
		case RewardWeight:
			if reward.Amount == 0 {
				vb.Field(field+".amount", "must not be zero")
			}
		default:
			vb.Fieldf(field+".kind", "must be one of: %s, %s, %s", RewardNothing, RewardItem, RewardWeight)
		}
	}
	validateTotal("wheel", total, vb)
}

func validateBands(field string, bands []Band, vb *errors.ValidationBuilder) {
	total := 0
	for i, band := range bands {
		name := fmt.Sprintf("%s[%d]", field, i)
		total += validateChance(name+".chance", band.Chance, vb)
		if band.Min > band.Max {
			vb.Fieldf(name, "min %d exceeds max %d", band.Min, band.Max)
		}
	}
	validateTotal(field, total, vb)
}

func validateChance(field string, chance int, vb *errors.ValidationBuilder) int {
	if chance <= 0 {
		vb.Fieldf(field, "must be positive, got %d", chance)
		return 0
	}
	return chance
}

func validateTotal(field string, total int, vb *errors.ValidationBuilder) {
	if total != TableTotal {
		vb.Fieldf(field, "chances must sum to %d, got %d", TableTotal, total)
	}
}

func validateNonNegative(field string, value int, vb *errors.ValidationBuilder) {
	if value < 0 {
		vb.Fieldf(field, "must not be negative, got %d", value)
	}
}
