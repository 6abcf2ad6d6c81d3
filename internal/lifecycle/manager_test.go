package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/lifecycle"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
	"github.com/KirkDiggler/petbot/internal/rules"
	"github.com/KirkDiggler/petbot/internal/testutils/builders"
)

type ManagerTestSuite struct {
	suite.Suite
	rules   *rules.Rules
	manager *lifecycle.Manager
	now     time.Time
	today   clock.Date
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.rules = rules.Default()
	s.manager = s.newManager()
	s.now = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
	s.today = clock.DateOf(s.now)
}

func (s *ManagerTestSuite) newManager() *lifecycle.Manager {
	m, err := lifecycle.New(&lifecycle.Config{Rules: s.rules})
	s.Require().NoError(err)
	return m
}

func (s *ManagerTestSuite) TestNewRequiresRules() {
	_, err := lifecycle.New(&lifecycle.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *ManagerTestSuite) TestNewPlayer() {
	state := s.manager.NewPlayer(entities.PlayerKey{ChatID: -100, PlayerID: 123456}, "Stalker", s.now)

	s.Equal(int64(-100), state.ChatID)
	s.Equal("Stalker", state.DisplayName)
	s.Equal("Piglet_456", state.PetName)
	s.Equal(10, state.Weight)
	s.Equal(1, state.Generation)
	s.Equal(s.now, state.BornAt)
	s.Zero(state.Recruits)
	s.True(state.LastRecruitDate.IsZero())
}

func (s *ManagerTestSuite) TestAccrueRecruits() {
	testCases := []struct {
		name        string
		recruits    int
		accruedOn   clock.Date
		wantPool    int
		wantChanged bool
	}{
		{name: "first observation ever", wantPool: 1, wantChanged: true},
		{name: "new day", recruits: 1, accruedOn: "2025-03-13", wantPool: 2, wantChanged: true},
		{name: "same day is a no-op", recruits: 1, accruedOn: "2025-03-14", wantPool: 1},
		{name: "capped at max pool", recruits: 3, accruedOn: "2025-01-01", wantPool: 3, wantChanged: true},
		{name: "one increment after a long absence", recruits: 0, accruedOn: "2024-12-01", wantPool: 1, wantChanged: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			state := builders.NewPlayerBuilder().WithRecruits(tc.recruits, tc.accruedOn).Build()

			changed := s.manager.AccrueRecruits(state, s.today)

			s.Equal(tc.wantChanged, changed)
			s.Equal(tc.wantPool, state.Recruits)
			s.Equal(s.today, state.LastRecruitDate)
		})
	}
}

func (s *ManagerTestSuite) TestAccrueRecruitsWhileDead() {
	state := builders.NewPlayerBuilder().Dead().WithRecruits(0, "2025-03-13").Build()

	s.True(s.manager.AccrueRecruits(state, s.today))
	s.Equal(1, state.Recruits)
}

func (s *ManagerTestSuite) TestAccrueRecruitsNeverExceedsPool() {
	state := builders.NewPlayerBuilder().Build()
	day := s.now
	for i := 0; i < 30; i++ {
		s.manager.AccrueRecruits(state, clock.DateOf(day))
		day = day.Add(24 * time.Hour)
		s.LessOrEqual(state.Recruits, s.rules.Recruitment.MaxPool)
	}
	s.Equal(s.rules.Recruitment.MaxPool, state.Recruits)
}

func (s *ManagerTestSuite) TestApplyWeightNoFloor() {
	state := builders.NewPlayerBuilder().WithWeight(3).
		FedOn(s.today, 1).PettedAt(s.now).FoughtAt(s.now).Build()
	inv := entities.Inventory{rules.ItemVodka: 2}

	s.False(s.manager.ApplyWeight(state, inv, 4))
	s.Equal(7, state.Weight)

	s.True(s.manager.ApplyWeight(state, inv, -15))
	s.Equal(0, state.Weight)
	s.False(state.Alive())
	s.Empty(inv)
	s.Zero(state.FeedCount)
	s.True(state.LastFeedDate.IsZero())
	s.True(state.LastPetAt.IsZero())
	s.True(state.LastFightAt.IsZero())
}

func (s *ManagerTestSuite) TestApplyWeightExactlyZeroKills() {
	state := builders.NewPlayerBuilder().WithWeight(5).Build()
	s.True(s.manager.ApplyWeight(state, entities.NewInventory(), -5))
	s.Equal(0, state.Weight)
}

func (s *ManagerTestSuite) TestApplyWeightClampFloor() {
	s.rules.WeightFloor = rules.WeightFloorClamp
	manager := s.newManager()

	state := builders.NewPlayerBuilder().WithWeight(3).Build()
	inv := entities.Inventory{rules.ItemBaton: 1}

	s.False(manager.ApplyWeight(state, inv, -40))
	s.Equal(1, state.Weight)
	s.True(state.Alive())
	s.Equal(1, inv.Quantity(rules.ItemBaton))
}

func (s *ManagerTestSuite) TestKillKeepsPoolAndName() {
	state := builders.NewPlayerBuilder().WithPetName("Boris").WithRecruits(2, s.today).WithGeneration(3).Build()
	inv := entities.Inventory{rules.ItemCan: 1, rules.ItemEnergy: 4}

	dropped := s.manager.Kill(state, inv)

	s.Equal(map[string]int{rules.ItemCan: 1, rules.ItemEnergy: 4}, dropped)
	s.Equal("Boris", state.PetName)
	s.Equal(2, state.Recruits)
	s.Equal(3, state.Generation)
}

func (s *ManagerTestSuite) TestRecruit() {
	s.Run("already alive", func() {
		state := builders.NewPlayerBuilder().WithRecruits(2, s.today).Build()
		s.Equal(lifecycle.AlreadyAlive, s.manager.Recruit(state, s.now))
		s.Equal(2, state.Recruits)
	})

	s.Run("empty pool", func() {
		state := builders.NewPlayerBuilder().Dead().Build()
		s.Equal(lifecycle.NoRecruits, s.manager.Recruit(state, s.now))
		s.Zero(state.Weight)
	})

	s.Run("respawn", func() {
		state := builders.NewPlayerBuilder().WithKey(-100, 4242).Dead().WithRecruits(2, s.today).Build()

		s.Equal(lifecycle.Recruited, s.manager.Recruit(state, s.now))
		s.Equal(10, state.Weight)
		s.Equal(1, state.Recruits)
		s.Equal(2, state.Generation)
		s.Equal("Piglet_242_2", state.PetName)
		s.Equal(s.now, state.BornAt)
		s.Zero(state.DaysAlive(s.now))
	})
}
