// Package economy draws the random outcomes of the pet economy from the
// active rule set. It never touches player state; callers apply the results.
package economy

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/rules"
)

// Config holds the dependencies of the engine
type Config struct {
	Roller dice.Roller
	Rules  *rules.Rules
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

	return vb.Build()
}

// Engine samples reward tables
type Engine struct {
	roller dice.Roller
	rules  *rules.Rules
}

// New creates an engine
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid economy config")
	}

	return &Engine{
		roller: cfg.Roller,
		rules:  cfg.Rules,
	}, nil
}

// FreeFeedDelta draws the weight change of a feed without an item
func (e *Engine) FreeFeedDelta() (int, error) {
	return e.band(e.rules.FreeFeed)
}

// ItemFeedDelta draws the weight change of feeding item
func (e *Engine) ItemFeedDelta(item *entities.Item) (int, error) {
	if item == nil || item.FeedDelta == nil || !item.Can(entities.CapabilityFeed) {
		return 0, errors.FailedPrecondition("item cannot be fed")
	}
	return RollRange(e.roller, item.FeedDelta.Min, item.FeedDelta.Max)
}

// ZonewalkOutcome is the result of one loot run
type ZonewalkOutcome struct {
	Died        bool
	Loot        []string
	WeightDelta int
}

// Zonewalk draws a loot run: the death check first, then the loot count,
// each item independently, then the weight change. A fatal run draws nothing else.
func (e *Engine) Zonewalk() (*ZonewalkOutcome, error) {
	zw := e.rules.Zonewalk

	died, err := Percent(e.roller, zw.DeathChance)
	if err != nil {
		return nil, err
	}
	if died {
		return &ZonewalkOutcome{Died: true}, nil
	}

	count, err := SampleWeighted(e.roller, zw.LootCounts, func(lc rules.LootCount) int { return lc.Chance })
	if err != nil {
		return nil, errors.Wrap(err, "failed to draw loot count")
	}

	outcome := &ZonewalkOutcome{}
	for i := 0; i < count.Count; i++ {
		entry, err := SampleWeighted(e.roller, zw.Loot, func(l rules.LootEntry) int { return l.Chance })
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw loot")
		}
		outcome.Loot = append(outcome.Loot, entry.Item)
	}

	outcome.WeightDelta, err = e.band(zw.WeightDelta)
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Wheel draws one prize
func (e *Engine) Wheel() (rules.WheelReward, error) {
	reward, err := SampleWeighted(e.roller, e.rules.Wheel, func(w rules.WheelReward) int { return w.Chance })
	if err != nil {
		return rules.WheelReward{}, errors.Wrap(err, "failed to spin wheel")
	}
	return reward, nil
}

// PetDelta draws the rare weight change of petting. The second value is
// false when nothing happened.
func (e *Engine) PetDelta() (int, bool, error) {
	hit, err := Percent(e.roller, e.rules.Pet.Chance)
	if err != nil || !hit {
		return 0, false, err
	}

	magnitude, err := RollRange(e.roller, 1, e.rules.Pet.MaxDelta)
	if err != nil {
		return 0, false, err
	}
	sign, err := e.roller.Roll(2)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to roll pet sign")
	}
	if sign == 1 {
		return -magnitude, true, nil
	}
	return magnitude, true, nil
}

func (e *Engine) band(bands []rules.Band) (int, error) {
	b, err := SampleWeighted(e.roller, bands, func(b rules.Band) int { return b.Chance })
	if err != nil {
		return 0, errors.Wrap(err, "failed to draw band")
	}
	return RollRange(e.roller, b.Min, b.Max)
}
