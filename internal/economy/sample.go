package economy

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/petbot/internal/errors"
)

// SampleWeighted draws one entry with probability chance(entry)/total.
// A single die of size total is rolled and the entries are walked in order,
// so entry i covers the rolls (sum of earlier chances, sum including i].
func SampleWeighted[T any](roller dice.Roller, entries []T, chance func(T) int) (T, error) {
	var zero T
	total := 0
	for _, e := range entries {
		if c := chance(e); c > 0 {
			total += c
		}
	}
	if total == 0 {
		return zero, errors.FailedPrecondition("weighted table is empty")
	}

	roll, err := roller.Roll(total)
	if err != nil {
		return zero, errors.Wrap(err, "failed to roll weighted table")
	}

	cumulative := 0
	for _, e := range entries {
		c := chance(e)
		if c <= 0 {
			continue
		}
		cumulative += c
		if roll <= cumulative {
			return e, nil
		}
	}
	return zero, errors.Internalf("roll %d outside table total %d", roll, total)
}

// RollRange returns a uniform integer in [minValue, maxValue]
func RollRange(roller dice.Roller, minValue, maxValue int) (int, error) {
	if minValue > maxValue {
		return 0, errors.InvalidArgumentf("range min %d exceeds max %d", minValue, maxValue)
	}
	if minValue == maxValue {
		return minValue, nil
	}

	roll, err := roller.Roll(maxValue - minValue + 1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll range")
	}
	return minValue + roll - 1, nil
}

// Percent succeeds with probability chance/100. Certain and impossible
// outcomes do not consume a roll.
func Percent(roller dice.Roller, chance int) (bool, error) {
	if chance <= 0 {
		return false, nil
	}
	if chance >= 100 {
		return true, nil
	}

	roll, err := roller.Roll(100)
	if err != nil {
		return false, errors.Wrap(err, "failed to roll percentile")
	}
	return roll <= chance, nil
}
