package player_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/repositories/player"
	"github.com/KirkDiggler/petbot/internal/testutils"
	"github.com/KirkDiggler/petbot/internal/testutils/builders"
)

// RepositorySuite runs the same behaviour checks against every store
type RepositorySuite struct {
	suite.Suite
	newRepo func(t *testing.T) (player.Repository, func())

	repo    player.Repository
	cleanup func()
	ctx     context.Context
	alice   entities.PlayerKey
	bob     entities.PlayerKey
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositorySuite{
		newRepo: func(_ *testing.T) (player.Repository, func()) {
			return player.NewInMemory(), func() {}
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositorySuite{
		newRepo: func(t *testing.T) (player.Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			repo, err := player.NewRedis(&player.RedisConfig{Client: client, MaxRetries: 1000})
			if err != nil {
				t.Fatalf("failed to create redis repository: %v", err)
			}
			return repo, cleanup
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositorySuite{
		newRepo: func(t *testing.T) (player.Repository, func()) {
			repo, err := player.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "players.db"))
			if err != nil {
				t.Fatalf("failed to open sqlite repository: %v", err)
			}
			return repo, func() { _ = repo.Close() }
		},
	})
}

func (s *RepositorySuite) SetupTest() {
	s.repo, s.cleanup = s.newRepo(s.T())
	s.ctx = context.Background()
	s.alice = entities.PlayerKey{ChatID: testutils.TestChatID, PlayerID: 1}
	s.bob = entities.PlayerKey{ChatID: testutils.TestChatID, PlayerID: 2}
}

func (s *RepositorySuite) TearDownTest() {
	s.cleanup()
}

// seed stores a player with the given weight and inventory
func (s *RepositorySuite) seed(key entities.PlayerKey, weight int, inv entities.Inventory) {
	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Keys: []entities.PlayerKey{key},
		Fn: func(_ context.Context, snaps player.Snapshots) error {
			snap := snaps[key]
			snap.State = builders.NewPlayerBuilder().WithKey(key.ChatID, key.PlayerID).WithWeight(weight).Build()
			for item, qty := range inv {
				snap.Inventory[item] = qty
			}
			return nil
		},
	})
	s.Require().NoError(err)
}

func (s *RepositorySuite) weightOf(key entities.PlayerKey) int {
	out, err := s.repo.GetPlayer(s.ctx, &player.GetPlayerInput{Key: key})
	s.Require().NoError(err)
	return out.State.Weight
}

func (s *RepositorySuite) inventoryOf(key entities.PlayerKey) entities.Inventory {
	out, err := s.repo.GetInventory(s.ctx, &player.GetInventoryInput{Key: key})
	s.Require().NoError(err)
	return out.Inventory
}

func (s *RepositorySuite) TestGetUnknownPlayer() {
	_, err := s.repo.GetPlayer(s.ctx, &player.GetPlayerInput{Key: s.alice})
	s.True(errors.IsNotFound(err))

	inv := s.inventoryOf(s.alice)
	s.NotNil(inv)
	s.Empty(inv)
}

func (s *RepositorySuite) TestCreateAndReload() {
	born := time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)
	petted := born.Add(3 * time.Hour)

	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Keys: []entities.PlayerKey{s.alice},
		Fn: func(_ context.Context, snaps player.Snapshots) error {
			snap := snaps[s.alice]
			s.False(snap.Exists())
			s.NotNil(snap.Inventory)

			snap.State = builders.NewPlayerBuilder().
				WithKey(s.alice.ChatID, s.alice.PlayerID).
				WithDisplayName("Alice").
				WithWeight(17).
				FedOn("2025-03-14", 1).
				WithRecruits(2, "2025-03-14").
				PettedAt(petted).
				BornAt(born).
				Build()
			snap.Inventory["vodka"] = 2
			snap.Inventory["energy"] = 1
			return nil
		},
	})
	s.Require().NoError(err)

	out, err := s.repo.GetPlayer(s.ctx, &player.GetPlayerInput{Key: s.alice})
	s.Require().NoError(err)
	state := out.State
	s.Equal("Alice", state.DisplayName)
	s.Equal(17, state.Weight)
	s.Equal(1, state.FeedCount)
	s.Equal("2025-03-14", state.LastFeedDate.String())
	s.Equal(2, state.Recruits)
	s.True(petted.Equal(state.LastPetAt))
	s.True(born.Equal(state.BornAt))
	s.True(state.LastFightAt.IsZero())
	s.True(state.LastZonewalkDate.IsZero())

	s.Equal(entities.Inventory{"vodka": 2, "energy": 1}, s.inventoryOf(s.alice))
}

func (s *RepositorySuite) TestFailedTransactionWritesNothing() {
	s.seed(s.alice, 10, entities.Inventory{"baton": 1})
	s.seed(s.bob, 10, nil)

	boom := errors.Internal("boom")
	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Keys: []entities.PlayerKey{s.alice, s.bob},
		Fn: func(_ context.Context, snaps player.Snapshots) error {
			snaps[s.alice].State.Weight = 99
			snaps[s.alice].Inventory.Remove("baton", 1)
			snaps[s.bob].State.Weight = 0
			return boom
		},
	})
	s.Require().Error(err)
	s.True(errors.Is(err, boom))

	s.Equal(10, s.weightOf(s.alice))
	s.Equal(10, s.weightOf(s.bob))
	s.Equal(1, s.inventoryOf(s.alice).Quantity("baton"))
}

func (s *RepositorySuite) TestMissingSnapshotIsNotCreated() {
	s.seed(s.alice, 10, nil)

	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Keys: []entities.PlayerKey{s.alice, s.bob},
		Fn: func(_ context.Context, snaps player.Snapshots) error {
			s.True(snaps[s.alice].Exists())
			s.False(snaps[s.bob].Exists())
			snaps[s.alice].State.Weight++
			return nil
		},
	})
	s.Require().NoError(err)

	s.Equal(11, s.weightOf(s.alice))
	_, err = s.repo.GetPlayer(s.ctx, &player.GetPlayerInput{Key: s.bob})
	s.True(errors.IsNotFound(err))
}

func (s *RepositorySuite) TestInventoryIsReplaced() {
	s.seed(s.alice, 10, entities.Inventory{"baton": 2, "can": 1})

	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Keys: []entities.PlayerKey{s.alice},
		Fn: func(_ context.Context, snaps player.Snapshots) error {
			inv := snaps[s.alice].Inventory
			s.True(inv.Remove("can", 1))
			s.NoError(inv.Add("sausage", 3))
			inv["ghost"] = 0
			return nil
		},
	})
	s.Require().NoError(err)

	s.Equal(entities.Inventory{"baton": 2, "sausage": 3}, s.inventoryOf(s.alice))
}

func (s *RepositorySuite) TestDuplicateKeysShareOneSnapshot() {
	s.seed(s.alice, 10, nil)

	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Keys: []entities.PlayerKey{s.alice, s.alice},
		Fn: func(_ context.Context, snaps player.Snapshots) error {
			s.Len(snaps, 1)
			snaps[s.alice].State.Weight = 12
			return nil
		},
	})
	s.Require().NoError(err)
	s.Equal(12, s.weightOf(s.alice))
}

func (s *RepositorySuite) TestInputValidation() {
	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Fn: func(context.Context, player.Snapshots) error { return nil },
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{Keys: []entities.PlayerKey{s.alice}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.TopByWeight(s.ctx, &player.TopByWeightInput{ChatID: testutils.TestChatID})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RepositorySuite) TestTopByWeight() {
	other := entities.PlayerKey{ChatID: 99, PlayerID: 1}
	s.seed(entities.PlayerKey{ChatID: testutils.TestChatID, PlayerID: 30}, 50, nil)
	s.seed(entities.PlayerKey{ChatID: testutils.TestChatID, PlayerID: 4}, 50, nil)
	s.seed(entities.PlayerKey{ChatID: testutils.TestChatID, PlayerID: 7}, 80, nil)
	s.seed(entities.PlayerKey{ChatID: testutils.TestChatID, PlayerID: 8}, 3, nil)
	s.seed(entities.PlayerKey{ChatID: testutils.TestChatID, PlayerID: 9}, 0, nil)
	s.seed(other, 500, nil)

	out, err := s.repo.TopByWeight(s.ctx, &player.TopByWeightInput{ChatID: testutils.TestChatID, Limit: 3})
	s.Require().NoError(err)

	ids := make([]int64, 0, len(out.Players))
	for _, p := range out.Players {
		ids = append(ids, p.PlayerID)
	}
	s.Equal([]int64{7, 4, 30}, ids)

	out, err = s.repo.TopByWeight(s.ctx, &player.TopByWeightInput{ChatID: testutils.TestChatID, Limit: 10})
	s.Require().NoError(err)
	s.Len(out.Players, 4)

	out, err = s.repo.TopByWeight(s.ctx, &player.TopByWeightInput{ChatID: 12345, Limit: 10})
	s.Require().NoError(err)
	s.Empty(out.Players)
}

func (s *RepositorySuite) TestTopDropsDeadCreatures() {
	s.seed(s.alice, 40, nil)
	s.seed(s.bob, 20, nil)

	_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
		Keys: []entities.PlayerKey{s.alice},
		Fn: func(_ context.Context, snaps player.Snapshots) error {
			snaps[s.alice].State.Weight = -3
			return nil
		},
	})
	s.Require().NoError(err)

	out, err := s.repo.TopByWeight(s.ctx, &player.TopByWeightInput{ChatID: testutils.TestChatID, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(out.Players, 1)
	s.Equal(s.bob.PlayerID, out.Players[0].PlayerID)
}

func (s *RepositorySuite) TestConcurrentUpdatesAreNotLost() {
	const (
		workers   = 8
		perWorker = 5
	)
	s.seed(s.alice, 10, nil)

	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
					Keys: []entities.PlayerKey{s.alice},
					Fn: func(_ context.Context, snaps player.Snapshots) error {
						snaps[s.alice].State.Weight++
						return snaps[s.alice].Inventory.Add("baton", 1)
					},
				})
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}
	s.Equal(10+workers*perWorker, s.weightOf(s.alice))
	s.Equal(workers*perWorker, s.inventoryOf(s.alice).Quantity("baton"))
}

func (s *RepositorySuite) TestOpposingTransfersConserveItems() {
	s.seed(s.alice, 10, entities.Inventory{"can": 20})
	s.seed(s.bob, 10, entities.Inventory{"can": 20})

	transfer := func(from, to entities.PlayerKey) error {
		_, err := s.repo.WithPlayers(s.ctx, &player.WithPlayersInput{
			Keys: []entities.PlayerKey{from, to},
			Fn: func(_ context.Context, snaps player.Snapshots) error {
				if !snaps[from].Inventory.Remove("can", 1) {
					return fmt.Errorf("%s ran out of cans", from)
				}
				return snaps[to].Inventory.Add("can", 1)
			},
		})
		return err
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); errs <- transfer(s.alice, s.bob) }()
		go func() { defer wg.Done(); errs <- transfer(s.bob, s.alice) }()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}
	s.Equal(40, s.inventoryOf(s.alice).Quantity("can")+s.inventoryOf(s.bob).Quantity("can"))
}
