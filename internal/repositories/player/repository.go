// Package player provides the interface for player state persistence
package player

//go:generate mockgen -destination=mock/mock_repository.go -package=playermock github.com/KirkDiggler/petbot/internal/repositories/player Repository

import (
	"context"
	"sort"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
)

// Repository defines the interface for player persistence.
// Every implementation commits a WithPlayers call as a single atomic unit.
type Repository interface {
	// WithPlayers loads the listed players, runs Fn on the snapshots and
	// commits every snapshot whose State is set. Nothing is written when Fn
	// returns an error. Fn may run more than once when the store retries a
	// conflicting transaction, so it must rebuild any result it produces.
	// Returns errors.InvalidArgument for missing keys or Fn
	// Returns errors.Aborted when conflicts persist past the retry budget
	// Returns errors.Internal for storage failures
	WithPlayers(ctx context.Context, input *WithPlayersInput) (*WithPlayersOutput, error)

	// GetPlayer retrieves one player's state
	// Returns errors.NotFound if the player never played in the chat
	// Returns errors.Internal for storage failures
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error)

	// GetInventory retrieves one player's inventory; unknown players have an empty one
	// Returns errors.Internal for storage failures
	GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error)

	// TopByWeight lists living creatures of a chat, heaviest first, ties by player id
	// Returns errors.InvalidArgument for a non-positive limit
	// Returns errors.Internal for storage failures
	TopByWeight(ctx context.Context, input *TopByWeightInput) (*TopByWeightOutput, error)
}

// Snapshot is the in-transaction view of one player
type Snapshot struct {
	Key entities.PlayerKey

	// State is nil when the player does not exist yet; set it to create one
	State *entities.PlayerState

	// Inventory is never nil
	Inventory entities.Inventory
}

// Exists reports whether the player was stored before the transaction
// or has been created in it
func (s *Snapshot) Exists() bool {
	return s.State != nil
}

// Snapshots maps the transaction's keys to their snapshots
type Snapshots map[entities.PlayerKey]*Snapshot

// TxFunc mutates snapshots inside a transaction
type TxFunc func(ctx context.Context, snapshots Snapshots) error

// WithPlayersInput defines the input for an atomic multi-player update
type WithPlayersInput struct {
	Keys []entities.PlayerKey
	Fn   TxFunc
}

// WithPlayersOutput defines the output for an atomic multi-player update
type WithPlayersOutput struct {
	// Attempts is how many times Fn ran before the commit succeeded
	Attempts int
}

// GetPlayerInput defines the input for getting a player
type GetPlayerInput struct {
	Key entities.PlayerKey
}

// GetPlayerOutput defines the output for getting a player
type GetPlayerOutput struct {
	State *entities.PlayerState
}

// GetInventoryInput defines the input for getting an inventory
type GetInventoryInput struct {
	Key entities.PlayerKey
}

// GetInventoryOutput defines the output for getting an inventory
type GetInventoryOutput struct {
	Inventory entities.Inventory
}

// TopByWeightInput defines the input for the leaderboard
type TopByWeightInput struct {
	ChatID int64
	Limit  int
}

// TopByWeightOutput defines the output for the leaderboard
type TopByWeightOutput struct {
	Players []*entities.PlayerState
}

func (i *WithPlayersInput) validate() ([]entities.PlayerKey, error) {
	if i == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(i.Keys) == 0 {
		return nil, errors.InvalidArgument("at least one player key is required")
	}
	if i.Fn == nil {
		return nil, errors.InvalidArgument("transaction func is required")
	}
	return sortedKeys(i.Keys), nil
}

func (i *TopByWeightInput) validate() error {
	if i == nil {
		return errors.InvalidArgument("input is required")
	}
	if i.Limit <= 0 {
		return errors.InvalidArgumentf("limit must be positive, got %d", i.Limit)
	}
	return nil
}

// sortedKeys deduplicates keys and orders them so locks are always taken in the same order
func sortedKeys(keys []entities.PlayerKey) []entities.PlayerKey {
	seen := make(map[entities.PlayerKey]bool, len(keys))
	out := make([]entities.PlayerKey, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Less(out[b]) })
	return out
}

// prepareCommit pins each created state to its key and drops non-positive inventory entries
func prepareCommit(snap *Snapshot) {
	snap.State.ChatID = snap.Key.ChatID
	snap.State.PlayerID = snap.Key.PlayerID
	for item, qty := range snap.Inventory {
		if qty <= 0 {
			delete(snap.Inventory, item)
		}
	}
}

// rankPlayers keeps living players, sorts them for the leaderboard and truncates to limit
func rankPlayers(players []*entities.PlayerState, limit int) []*entities.PlayerState {
	alive := players[:0]
	for _, p := range players {
		if p != nil && p.Alive() {
			alive = append(alive, p)
		}
	}
	sort.SliceStable(alive, func(a, b int) bool {
		if alive[a].Weight != alive[b].Weight {
			return alive[a].Weight > alive[b].Weight
		}
		return alive[a].PlayerID < alive[b].PlayerID
	})
	if len(alive) > limit {
		alive = alive[:limit]
	}
	return alive
}
