package testutils

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller replays a fixed sequence of die results.
// It fails the roll when the script runs out or a value does not fit the die.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls []int
	next  int
	sizes []int
}

// NewScriptedRoller returns a roller that yields rolls in order
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= len(r.rolls) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls (d%d requested)", len(r.rolls), size)
	}
	v := r.rolls[r.next]
	if v < 1 || v > size {
		return 0, fmt.Errorf("scripted roll %d does not fit d%d", v, size)
	}
	r.next++
	r.sizes = append(r.sizes, size)
	return v, nil
}

// RollN returns count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining returns how many scripted rolls were not consumed
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rolls) - r.next
}

// Sizes returns the die sizes requested so far
func (r *ScriptedRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}

// SeededRoller is a deterministic pseudo-random roller for distribution tests
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRoller returns a roller whose sequence depends only on seed
func NewSeededRoller(seed uint64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(size) + 1, nil
}

// RollN returns count values in [1, size]
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

var (
	_ dice.Roller = (*ScriptedRoller)(nil)
	_ dice.Roller = (*SeededRoller)(nil)
)
