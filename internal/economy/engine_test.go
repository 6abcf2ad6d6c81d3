package economy_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/petbot/internal/economy"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/rules"
	"github.com/KirkDiggler/petbot/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite
	rules *rules.Rules
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.rules = rules.Default()
}

func (s *EngineTestSuite) engine(rolls ...int) (*economy.Engine, *testutils.ScriptedRoller) {
	roller := testutils.NewScriptedRoller(rolls...)
	e, err := economy.New(&economy.Config{Roller: roller, Rules: s.rules})
	s.Require().NoError(err)
	return e, roller
}

func (s *EngineTestSuite) TestNewRequiresDependencies() {
	_, err := economy.New(&economy.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Roller")
	s.Contains(err.Error(), "Rules")

	_, err = economy.New(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestFreeFeedDelta() {
	testCases := []struct {
		name  string
		rolls []int
		want  int
	}{
		{name: "worst band lower edge", rolls: []int{1, 1}, want: -15},
		{name: "worst band upper edge", rolls: []int{5, 8}, want: -8},
		{name: "small loss", rolls: []int{6, 7}, want: -1},
		{name: "zero band needs one roll", rolls: []int{25}, want: 0},
		{name: "common gain", rolls: []int{31, 3}, want: 3},
		{name: "jackpot", rolls: []int{100, 13}, want: 25},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			e, roller := s.engine(tc.rolls...)
			delta, err := e.FreeFeedDelta()
			s.Require().NoError(err)
			s.Equal(tc.want, delta)
			s.Zero(roller.Remaining())
		})
	}
}

func (s *EngineTestSuite) TestItemFeedDelta() {
	catalog := s.rules.Catalog()
	vodka, _ := catalog.Get(rules.ItemVodka)
	energy, _ := catalog.Get(rules.ItemEnergy)

	e, roller := s.engine(51, 1)
	delta, err := e.ItemFeedDelta(vodka)
	s.Require().NoError(err)
	s.Equal(25, delta)

	delta, err = e.ItemFeedDelta(vodka)
	s.Require().NoError(err)
	s.Equal(-25, delta)
	s.Equal([]int{51, 51}, roller.Sizes())

	_, err = e.ItemFeedDelta(energy)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestZonewalkDeath() {
	e, roller := s.engine(5)
	outcome, err := e.Zonewalk()
	s.Require().NoError(err)
	s.True(outcome.Died)
	s.Empty(outcome.Loot)
	s.Zero(outcome.WeightDelta)
	s.Zero(roller.Remaining())
}

func (s *EngineTestSuite) TestZonewalkEmptyHanded() {
	e, roller := s.engine(6, 50, 50)
	outcome, err := e.Zonewalk()
	s.Require().NoError(err)
	s.False(outcome.Died)
	s.Empty(outcome.Loot)
	s.Zero(outcome.WeightDelta)
	s.Zero(roller.Remaining())
}

func (s *EngineTestSuite) TestZonewalkFullHaul() {
	e, roller := s.engine(100, 100, 1, 36, 100, 76, 5)
	outcome, err := e.Zonewalk()
	s.Require().NoError(err)
	s.False(outcome.Died)
	s.Equal([]string{rules.ItemBaton, rules.ItemSausage, rules.ItemEnergy}, outcome.Loot)
	s.Equal(5, outcome.WeightDelta)
	s.Zero(roller.Remaining())
}

func (s *EngineTestSuite) TestWheel() {
	testCases := []struct {
		name string
		roll int
		want rules.WheelReward
	}{
		{name: "nothing", roll: 40, want: rules.WheelReward{Kind: rules.RewardNothing, Chance: 40}},
		{name: "two batons", roll: 41, want: rules.WheelReward{Kind: rules.RewardItem, Item: rules.ItemBaton, Amount: 2, Chance: 20}},
		{name: "weight bonus", roll: 100, want: rules.WheelReward{Kind: rules.RewardWeight, Amount: 5, Chance: 5}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			e, _ := s.engine(tc.roll)
			reward, err := e.Wheel()
			s.Require().NoError(err)
			s.Equal(tc.want, reward)
		})
	}
}

func (s *EngineTestSuite) TestPetDelta() {
	s.Run("usually nothing happens", func() {
		e, roller := s.engine(6)
		delta, changed, err := e.PetDelta()
		s.Require().NoError(err)
		s.False(changed)
		s.Zero(delta)
		s.Zero(roller.Remaining())
	})

	s.Run("loss", func() {
		e, _ := s.engine(5, 3, 1)
		delta, changed, err := e.PetDelta()
		s.Require().NoError(err)
		s.True(changed)
		s.Equal(-3, delta)
	})

	s.Run("gain", func() {
		e, _ := s.engine(1, 1, 2)
		delta, changed, err := e.PetDelta()
		s.Require().NoError(err)
		s.True(changed)
		s.Equal(1, delta)
	})
}

func (s *EngineTestSuite) TestRollerFailurePropagates() {
	e, _ := s.engine()
	_, err := e.FreeFeedDelta()
	s.Error(err)

	_, err = e.Zonewalk()
	s.Error(err)
}
