package player

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
	"github.com/KirkDiggler/petbot/internal/pkg/sqlitemigrate"
	"github.com/KirkDiggler/petbot/internal/repositories/player/migrations"
)

const playerColumns = `chat_id, player_id, display_name, pet_name, weight,
	feed_count, last_feed_date, zonewalk_count, last_zonewalk_date,
	wheel_count, last_wheel_date, last_pet_at, last_fight_at,
	recruits, last_recruit_date, generation, born_at, created_at`

// SQLiteRepository persists players in a single SQLite file.
// One connection serializes writers, so each WithPlayers is one SQL transaction.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and applies embedded migrations
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	dsn := filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run player migrations")
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// WithPlayers runs input.Fn inside one SQL transaction
func (r *SQLiteRepository) WithPlayers(ctx context.Context, input *WithPlayersInput) (*WithPlayersOutput, error) {
	keys, err := input.validate()
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, mapSQLiteError(err, "failed to begin player transaction")
	}
	defer func() { _ = tx.Rollback() }()

	snapshots := make(Snapshots, len(keys))
	for _, k := range keys {
		state, err := scanPlayer(tx.QueryRowContext(ctx,
			"SELECT "+playerColumns+" FROM players WHERE chat_id = ? AND player_id = ?",
			k.ChatID, k.PlayerID))
		if err != nil && !errors.IsNotFound(err) {
			return nil, errors.Wrapf(err, "failed to load player %s", k)
		}
		inv, err := queryInventory(ctx, tx, k)
		if err != nil {
			return nil, err
		}
		snapshots[k] = &Snapshot{Key: k, State: state, Inventory: inv}
	}

	if err := input.Fn(ctx, snapshots); err != nil {
		return nil, err
	}

	for _, k := range keys {
		snap := snapshots[k]
		if !snap.Exists() {
			continue
		}
		prepareCommit(snap)
		if err := savePlayer(ctx, tx, snap); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, mapSQLiteError(err, "failed to commit player transaction")
	}
	return &WithPlayersOutput{Attempts: 1}, nil
}

// GetPlayer retrieves one player's state
func (r *SQLiteRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state, err := scanPlayer(r.db.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE chat_id = ? AND player_id = ?",
		input.Key.ChatID, input.Key.PlayerID))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NotFoundf("player %s not found", input.Key)
		}
		return nil, errors.Wrapf(err, "failed to get player %s", input.Key)
	}
	return &GetPlayerOutput{State: state}, nil
}

// GetInventory retrieves one player's inventory
func (r *SQLiteRepository) GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	inv, err := queryInventory(ctx, r.db, input.Key)
	if err != nil {
		return nil, err
	}
	return &GetInventoryOutput{Inventory: inv}, nil
}

// TopByWeight ranks the living creatures of a chat
func (r *SQLiteRepository) TopByWeight(ctx context.Context, input *TopByWeightInput) (*TopByWeightOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+playerColumns+` FROM players
		 WHERE chat_id = ? AND weight > 0
		 ORDER BY weight DESC, player_id ASC
		 LIMIT ?`,
		input.ChatID, input.Limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query leaderboard of chat %d", input.ChatID)
	}
	defer func() { _ = rows.Close() }()

	var players []*entities.PlayerState
	for rows.Next() {
		state, err := scanPlayer(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan leaderboard row")
		}
		players = append(players, state)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate leaderboard")
	}

	return &TopByWeightOutput{Players: players}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanPlayer(row rowScanner) (*entities.PlayerState, error) {
	var (
		state                                          entities.PlayerState
		lastFeed, lastZonewalk, lastWheel, lastRecruit string
		lastPetAt, lastFightAt, bornAt, createdAt      int64
	)
	err := row.Scan(
		&state.ChatID, &state.PlayerID, &state.DisplayName, &state.PetName, &state.Weight,
		&state.FeedCount, &lastFeed, &state.ZonewalkCount, &lastZonewalk,
		&state.WheelCount, &lastWheel, &lastPetAt, &lastFightAt,
		&state.Recruits, &lastRecruit, &state.Generation, &bornAt, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("player not found")
		}
		return nil, err
	}

	state.LastFeedDate = clock.Date(lastFeed)
	state.LastZonewalkDate = clock.Date(lastZonewalk)
	state.LastWheelDate = clock.Date(lastWheel)
	state.LastRecruitDate = clock.Date(lastRecruit)
	state.LastPetAt = fromMillis(lastPetAt)
	state.LastFightAt = fromMillis(lastFightAt)
	state.BornAt = fromMillis(bornAt)
	state.CreatedAt = fromMillis(createdAt)
	return &state, nil
}

func queryInventory(ctx context.Context, q queryer, k entities.PlayerKey) (entities.Inventory, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT item, quantity FROM inventory_items WHERE chat_id = ? AND player_id = ?",
		k.ChatID, k.PlayerID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query inventory of %s", k)
	}
	defer func() { _ = rows.Close() }()

	inv := entities.NewInventory()
	for rows.Next() {
		var (
			item string
			qty  int
		)
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, errors.Wrapf(err, "failed to scan inventory of %s", k)
		}
		inv[item] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate inventory of %s", k)
	}
	return inv, nil
}

func savePlayer(ctx context.Context, tx *sql.Tx, snap *Snapshot) error {
	s := snap.State
	_, err := tx.ExecContext(ctx,
		"INSERT INTO players ("+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (chat_id, player_id) DO UPDATE SET
		   display_name = excluded.display_name,
		   pet_name = excluded.pet_name,
		   weight = excluded.weight,
		   feed_count = excluded.feed_count,
		   last_feed_date = excluded.last_feed_date,
		   zonewalk_count = excluded.zonewalk_count,
		   last_zonewalk_date = excluded.last_zonewalk_date,
		   wheel_count = excluded.wheel_count,
		   last_wheel_date = excluded.last_wheel_date,
		   last_pet_at = excluded.last_pet_at,
		   last_fight_at = excluded.last_fight_at,
		   recruits = excluded.recruits,
		   last_recruit_date = excluded.last_recruit_date,
		   generation = excluded.generation,
		   born_at = excluded.born_at,
		   created_at = excluded.created_at`,
		s.ChatID, s.PlayerID, s.DisplayName, s.PetName, s.Weight,
		s.FeedCount, string(s.LastFeedDate), s.ZonewalkCount, string(s.LastZonewalkDate),
		s.WheelCount, string(s.LastWheelDate), toMillis(s.LastPetAt), toMillis(s.LastFightAt),
		s.Recruits, string(s.LastRecruitDate), s.Generation, toMillis(s.BornAt), toMillis(s.CreatedAt),
	)
	if err != nil {
		return mapSQLiteError(err, "failed to save player "+snap.Key.String())
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM inventory_items WHERE chat_id = ? AND player_id = ?",
		s.ChatID, s.PlayerID); err != nil {
		return mapSQLiteError(err, "failed to clear inventory of "+snap.Key.String())
	}
	for _, entry := range snap.Inventory.Items() {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO inventory_items (chat_id, player_id, item, quantity) VALUES (?, ?, ?, ?)",
			s.ChatID, s.PlayerID, entry.Item, entry.Quantity); err != nil {
			return mapSQLiteError(err, "failed to save inventory of "+snap.Key.String())
		}
	}
	return nil
}

// toMillis stores the zero time as 0 so "never" survives a round trip
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v).UTC()
}

// mapSQLiteError marks lock contention as retryable and everything else as internal
func mapSQLiteError(err error, message string) error {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
			return errors.WrapWithCode(err, errors.CodeAborted, message)
		}
	}
	return errors.Wrap(err, message)
}

var _ Repository = (*SQLiteRepository)(nil)
