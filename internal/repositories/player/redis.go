package player

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	redisclient "github.com/KirkDiggler/petbot/internal/redis"
)

// DefaultMaxRetries bounds optimistic transaction attempts
const DefaultMaxRetries = 10

// StateKey is the JSON state key of a player. The chat id is a hash tag so
// every key of a chat lands in the same cluster slot.
func StateKey(k entities.PlayerKey) string {
	return fmt.Sprintf("pet:{%d}:state:%d", k.ChatID, k.PlayerID)
}

// InventoryKey is the item->quantity hash of a player
func InventoryKey(k entities.PlayerKey) string {
	return fmt.Sprintf("pet:{%d}:inv:%d", k.ChatID, k.PlayerID)
}

// LeaderboardKey is the sorted set of living creatures in a chat, scored by weight
func LeaderboardKey(chatID int64) string {
	return fmt.Sprintf("pet:{%d}:weights", chatID)
}

// stateReader is the read surface shared by the client and a WATCH transaction
type stateReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

type redisRepository struct {
	client     redisclient.Client
	maxRetries int
}

// RedisConfig contains configuration for the Redis player repository.
type RedisConfig struct {
	Client redisclient.Client

	// MaxRetries bounds WATCH conflicts per transaction; DefaultMaxRetries when zero
	MaxRetries int
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.MaxRetries < 0 {
		return errors.InvalidArgumentf("max retries cannot be negative, got %d", cfg.MaxRetries)
	}
	return nil
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}

	return &redisRepository{
		client:     cfg.Client,
		maxRetries: maxRetries,
	}, nil
}

// WithPlayers runs input.Fn under WATCH on every state and inventory key and
// commits with MULTI/EXEC, retrying when another writer got there first.
func (r *redisRepository) WithPlayers(ctx context.Context, input *WithPlayersInput) (*WithPlayersOutput, error) {
	keys, err := input.validate()
	if err != nil {
		return nil, err
	}

	watched := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		watched = append(watched, StateKey(k), InventoryKey(k))
	}

	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			return r.runTx(ctx, tx, keys, input.Fn)
		}, watched...)

		if err == nil {
			return &WithPlayersOutput{Attempts: attempt}, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}

		slog.WarnContext(ctx, "player transaction conflicted, retrying",
			"keys", len(keys),
			"attempt", attempt)
	}

	return nil, errors.Abortedf("player transaction aborted after %d conflicting attempts", r.maxRetries)
}

func (r *redisRepository) runTx(ctx context.Context, tx *redis.Tx, keys []entities.PlayerKey, fn TxFunc) error {
	snapshots := make(Snapshots, len(keys))
	for _, k := range keys {
		snap, err := loadSnapshot(ctx, tx, k)
		if err != nil {
			return err
		}
		snapshots[k] = snap
	}

	if err := fn(ctx, snapshots); err != nil {
		return err
	}

	payloads := make(map[entities.PlayerKey][]byte, len(keys))
	for _, k := range keys {
		snap := snapshots[k]
		if !snap.Exists() {
			continue
		}
		prepareCommit(snap)
		data, err := json.Marshal(snap.State)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal player %s", k)
		}
		payloads[k] = data
	}

	_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			data, ok := payloads[k]
			if !ok {
				continue
			}
			queueSave(ctx, pipe, snapshots[k], data)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.TxFailedErr) {
		return errors.Wrap(err, "failed to commit player transaction")
	}
	return err
}

func loadSnapshot(ctx context.Context, cmd stateReader, k entities.PlayerKey) (*Snapshot, error) {
	snap := &Snapshot{Key: k}

	raw, err := cmd.Get(ctx, StateKey(k)).Bytes()
	switch {
	case err == nil:
		var state entities.PlayerState
		if err := json.Unmarshal(raw, &state); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal player %s", k)
		}
		snap.State = &state
	case errors.Is(err, redis.Nil):
	default:
		return nil, errors.Wrapf(err, "failed to get player %s", k)
	}

	inv, err := loadInventory(ctx, cmd, k)
	if err != nil {
		return nil, err
	}
	snap.Inventory = inv
	return snap, nil
}

func loadInventory(ctx context.Context, cmd stateReader, k entities.PlayerKey) (entities.Inventory, error) {
	fields, err := cmd.HGetAll(ctx, InventoryKey(k)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get inventory of %s", k)
	}

	inv := entities.NewInventory()
	for item, raw := range fields {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.DataLossf("inventory of %s has bad quantity %q for %s", k, raw, item)
		}
		if qty > 0 {
			inv[item] = qty
		}
	}
	return inv, nil
}

func queueSave(ctx context.Context, pipe redis.Pipeliner, snap *Snapshot, data []byte) {
	k := snap.Key
	pipe.Set(ctx, StateKey(k), data, 0)

	pipe.Del(ctx, InventoryKey(k))
	if len(snap.Inventory) > 0 {
		fields := make(map[string]interface{}, len(snap.Inventory))
		for item, qty := range snap.Inventory {
			fields[item] = qty
		}
		pipe.HSet(ctx, InventoryKey(k), fields)
	}

	member := strconv.FormatInt(k.PlayerID, 10)
	if snap.State.Alive() {
		pipe.ZAdd(ctx, LeaderboardKey(k.ChatID), redis.Z{Score: float64(snap.State.Weight), Member: member})
	} else {
		pipe.ZRem(ctx, LeaderboardKey(k.ChatID), member)
	}
}

func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snap, err := loadSnapshot(ctx, r.client, input.Key)
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, errors.NotFoundf("player %s not found", input.Key)
	}
	return &GetPlayerOutput{State: snap.State}, nil
}

func (r *redisRepository) GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	inv, err := loadInventory(ctx, r.client, input.Key)
	if err != nil {
		return nil, err
	}
	return &GetInventoryOutput{Inventory: inv}, nil
}

func (r *redisRepository) TopByWeight(ctx context.Context, input *TopByWeightInput) (*TopByWeightOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Redis orders equal scores by member string, so ties are settled here by numeric id
	entries, err := r.client.ZRangeWithScores(ctx, LeaderboardKey(input.ChatID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read leaderboard of chat %d", input.ChatID)
	}

	type ranked struct {
		playerID int64
		weight   float64
	}
	ranking := make([]ranked, 0, len(entries))
	for _, z := range entries {
		member, _ := z.Member.(string)
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			slog.WarnContext(ctx, "skipping malformed leaderboard member",
				"chat_id", input.ChatID,
				"member", z.Member)
			continue
		}
		ranking = append(ranking, ranked{playerID: id, weight: z.Score})
	}
	sort.Slice(ranking, func(a, b int) bool {
		if ranking[a].weight != ranking[b].weight {
			return ranking[a].weight > ranking[b].weight
		}
		return ranking[a].playerID < ranking[b].playerID
	})
	if len(ranking) > input.Limit {
		ranking = ranking[:input.Limit]
	}
	if len(ranking) == 0 {
		return &TopByWeightOutput{}, nil
	}

	stateKeys := make([]string, len(ranking))
	for i, e := range ranking {
		stateKeys[i] = StateKey(entities.PlayerKey{ChatID: input.ChatID, PlayerID: e.playerID})
	}
	values, err := r.client.MGet(ctx, stateKeys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load leaderboard players of chat %d", input.ChatID)
	}

	players := make([]*entities.PlayerState, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "leaderboard member has no state",
				"key", stateKeys[i])
			continue
		}
		var state entities.PlayerState
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal %s", stateKeys[i])
		}
		players = append(players, &state)
	}

	return &TopByWeightOutput{Players: rankPlayers(players, input.Limit)}, nil
}
