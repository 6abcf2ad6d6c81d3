package player

import (
	"context"
	"sync"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Transactions serialize on per-player locks taken in key order.
type InMemoryRepository struct {
	mu          sync.RWMutex
	players     map[entities.PlayerKey]*entities.PlayerState
	inventories map[entities.PlayerKey]entities.Inventory

	locksMu sync.Mutex
	locks   map[entities.PlayerKey]*sync.Mutex
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		players:     make(map[entities.PlayerKey]*entities.PlayerState),
		inventories: make(map[entities.PlayerKey]entities.Inventory),
		locks:       make(map[entities.PlayerKey]*sync.Mutex),
	}
}

// WithPlayers runs input.Fn while holding the locks of every listed player
func (r *InMemoryRepository) WithPlayers(ctx context.Context, input *WithPlayersInput) (*WithPlayersOutput, error) {
	keys, err := input.validate()
	if err != nil {
		return nil, err
	}

	unlock := r.lock(keys)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeAborted, "transaction cancelled")
	}

	snapshots := make(Snapshots, len(keys))
	r.mu.RLock()
	for _, k := range keys {
		snapshots[k] = &Snapshot{
			Key:       k,
			State:     r.players[k].Clone(),
			Inventory: r.inventories[k].Clone(),
		}
	}
	r.mu.RUnlock()

	if err := input.Fn(ctx, snapshots); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		snap := snapshots[k]
		if !snap.Exists() {
			continue
		}
		prepareCommit(snap)
		r.players[k] = snap.State.Clone()
		r.inventories[k] = snap.Inventory.Clone()
	}

	return &WithPlayersOutput{Attempts: 1}, nil
}

// GetPlayer retrieves a copy of one player's state
func (r *InMemoryRepository) GetPlayer(_ context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.players[input.Key]
	if !ok {
		return nil, errors.NotFoundf("player %s not found", input.Key)
	}
	return &GetPlayerOutput{State: state.Clone()}, nil
}

// GetInventory retrieves a copy of one player's inventory
func (r *InMemoryRepository) GetInventory(_ context.Context, input *GetInventoryInput) (*GetInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return &GetInventoryOutput{Inventory: r.inventories[input.Key].Clone()}, nil
}

// TopByWeight ranks the living creatures of a chat
func (r *InMemoryRepository) TopByWeight(_ context.Context, input *TopByWeightInput) (*TopByWeightOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var players []*entities.PlayerState
	for k, state := range r.players {
		if k.ChatID == input.ChatID {
			players = append(players, state.Clone())
		}
	}
	r.mu.RUnlock()

	return &TopByWeightOutput{Players: rankPlayers(players, input.Limit)}, nil
}

func (r *InMemoryRepository) lock(keys []entities.PlayerKey) func() {
	r.locksMu.Lock()
	held := make([]*sync.Mutex, len(keys))
	for i, k := range keys {
		m, ok := r.locks[k]
		if !ok {
			m = &sync.Mutex{}
			r.locks[k] = m
		}
		held[i] = m
	}
	r.locksMu.Unlock()

	for _, m := range held {
		m.Lock()
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

var _ Repository = (*InMemoryRepository)(nil)
