package chat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/handlers/chat"
	"github.com/KirkDiggler/petbot/internal/rules"
	"github.com/KirkDiggler/petbot/internal/services/game"
	gamemock "github.com/KirkDiggler/petbot/internal/services/game/mock"
	"github.com/KirkDiggler/petbot/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *gamemock.MockService
	handler     *chat.Handler
	ctx         context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = gamemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := chat.NewHandler(&chat.HandlerConfig{
		GameService: s.mockService,
		Rules:       rules.Default(),
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) send(text string) *chat.Reply {
	reply, err := s.handler.HandleMessage(s.ctx, &chat.Message{
		ChatID:      testutils.TestChatID,
		PlayerID:    testutils.TestPlayerID,
		DisplayName: testutils.TestDisplayName,
		Text:        text,
	})
	s.Require().NoError(err)
	return reply
}

func (s *HandlerTestSuite) TestNewHandlerRequiresDependencies() {
	_, err := chat.NewHandler(&chat.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestPlainTextIsIgnored() {
	s.True(s.send("hello there").Ignored)
}

func (s *HandlerTestSuite) TestHelpDoesNotCallService() {
	reply := s.send("/start")
	s.Contains(reply.Text, "/feed [item]")
	s.Contains(reply.Text, "every 2h")
	s.Equal(reply.Text, s.send("/help@petbot").Text)
}

func (s *HandlerTestSuite) TestUnknownCommand() {
	s.Equal("Unknown command. Try /help.", s.send("/dance").Text)
}

func (s *HandlerTestSuite) TestFeedWithItem() {
	s.mockService.EXPECT().
		Handle(s.ctx, &game.HandleInput{
			Action:      game.ActionFeed,
			ChatID:      testutils.TestChatID,
			PlayerID:    testutils.TestPlayerID,
			DisplayName: testutils.TestDisplayName,
			Args:        "ковбаса",
		}).
		Return(&game.HandleOutput{Result: &game.ActionResult{
			Action:  game.ActionFeed,
			Outcome: game.OutcomeOK,
			PetName: "Piglet_242",
			Events: []game.Event{
				{Kind: game.EventFreeFeed, WeightBefore: 10, Weight: 13, Delta: 3},
				{Kind: game.EventItemFeed, Item: rules.ItemSausage, WeightBefore: 13, Weight: 9, Delta: -4},
			},
		}}, nil)

	reply := s.send("/FEED@petbot   ковбаса ")
	s.Equal("Free feed: 10 kg -> 13 kg (+3)\nFed Sausage: 13 kg -> 9 kg (-4)", reply.Text)
	s.NotNil(reply.Result)
}

func (s *HandlerTestSuite) TestFightParsesTarget() {
	s.mockService.EXPECT().
		Handle(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *game.HandleInput) (*game.HandleOutput, error) {
			s.Equal(game.ActionFight, input.Action)
			s.Equal(testutils.TestOpponentID, input.TargetPlayerID)
			return &game.HandleOutput{Result: &game.ActionResult{
				Action:  game.ActionFight,
				Outcome: game.OutcomeOK,
				PetName: "Piglet_242",
				Died:    false,
				Events: []game.Event{
					{Kind: game.EventFightWon, Name: "Piglet_777", WeightBefore: 20, Weight: 21, Delta: 1},
					{Kind: game.EventLooted, Items: map[string]int{rules.ItemVodka: 2}},
					{Kind: game.EventDied},
				},
				Opponent: &game.OpponentResult{PetName: "Piglet_777", Died: true},
			}}, nil
		})

	reply := s.send("/fight @7777")
	s.Equal("Piglet_242 beat Piglet_777: 20 kg -> 21 kg (+1)\nLoot taken: Vodka x2\nPiglet_777 died.", reply.Text)
}

func (s *HandlerTestSuite) TestServiceErrorIsRenderedGenerically() {
	s.mockService.EXPECT().Handle(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis: connection refused"))

	reply := s.send("/pet")
	s.Equal("Something went wrong while handling the command.", reply.Text)
}

func (s *HandlerTestSuite) TestServiceRejectionIsShownToPlayer() {
	s.mockService.EXPECT().Handle(s.ctx, gomock.Any()).Return(nil, errors.InvalidArgument("chat id is required"))

	reply := s.send("/pet")
	s.Equal("chat id is required", reply.Text)
	s.Nil(reply.Result)
}

func (s *HandlerTestSuite) TestRejections() {
	testCases := []struct {
		name   string
		result *game.ActionResult
		want   string
	}{
		{
			name: "quota with hint",
			result: &game.ActionResult{
				Action:     game.ActionFeed,
				Outcome:    game.OutcomeQuotaExceeded,
				RetryAfter: 14 * time.Hour,
				Hint:       []entities.InventoryEntry{{Item: rules.ItemBaton, Quantity: 2}},
			},
			want: "Daily feed is used up. Come back in 14h. Or use an item: /feed <item>. You have Baton x2",
		},
		{
			name:   "cooldown",
			result: &game.ActionResult{Action: game.ActionPet, Outcome: game.OutcomeCooldownActive, RetryAfter: 90*time.Minute + time.Second},
			want:   "Too soon to pet again. Try in 1h 31m.",
		},
		{
			name:   "dead",
			result: &game.ActionResult{Action: game.ActionWheel, Outcome: game.OutcomeDeadCreature, Recruits: 2},
			want:   "Your creature is dead. Recruits available: 2. Use /recruit.",
		},
		{
			name:   "no food",
			result: &game.ActionResult{Action: game.ActionFeed, Outcome: game.OutcomeNoFood, PetName: "Boris"},
			want:   "Boris already ate today and you have nothing to feed it.",
		},
		{
			name:   "unknown item",
			result: &game.ActionResult{Action: game.ActionFeed, Outcome: game.OutcomeUnknownItem, Item: "brick"},
			want:   `There is no item called "brick".`,
		},
		{
			name:   "failure",
			result: &game.ActionResult{Action: game.ActionFeed, Outcome: game.OutcomeFailure, Reason: "storage unavailable"},
			want:   "Something went wrong: storage unavailable. Try again later.",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().Handle(s.ctx, gomock.Any()).Return(&game.HandleOutput{Result: tc.result}, nil)
			s.Equal(tc.want, s.send("/"+string(tc.result.Action)).Text)
		})
	}
}

func (s *HandlerTestSuite) TestTopAndInventory() {
	s.mockService.EXPECT().Handle(s.ctx, gomock.Any()).Return(&game.HandleOutput{Result: &game.ActionResult{
		Action:  game.ActionTop,
		Outcome: game.OutcomeOK,
		Leaderboard: []game.LeaderboardEntry{
			{Rank: 1, PetName: "Piglet_777", DisplayName: "Bandit", Weight: 35, DaysAlive: 13},
		},
	}}, nil)
	s.Equal("Top creatures:\n1. Piglet_777 (Bandit): 35 kg, 13 days", s.send("/top").Text)

	s.mockService.EXPECT().Handle(s.ctx, gomock.Any()).Return(&game.HandleOutput{Result: &game.ActionResult{
		Action:  game.ActionInventory,
		Outcome: game.OutcomeOK,
	}}, nil)
	s.Equal("Your inventory is empty.", s.send("/inv").Text)
}

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		text   string
		ok     bool
		name   string
		args   string
		target int64
	}{
		{text: "/feed", ok: true, name: "feed"},
		{text: "  /Zonewalk@pet_bot  енергетик  ", ok: true, name: "zonewalk", args: "енергетик"},
		{text: "/fight 7777 now", ok: true, name: "fight", args: "7777 now", target: 7777},
		{text: "/fight bob", ok: true, name: "fight", args: "bob"},
		{text: "/feed\tbaton", ok: true, name: "feed", args: "baton"},
		{text: "/name\nRex the Second", ok: true, name: "name", args: "Rex the Second"},
		{text: "/fight\t@7777\tnow", ok: true, name: "fight", args: "@7777\tnow", target: 7777},
		{text: "/", ok: false},
		{text: "feed", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			cmd, ok := chat.ParseCommand(tc.text)
			if ok != tc.ok {
				t.Fatalf("ParseCommand(%q) ok = %v, want %v", tc.text, ok, tc.ok)
			}
			if !ok {
				return
			}
			if cmd.Name != tc.name || cmd.Args != tc.args || cmd.Target() != tc.target {
				t.Fatalf("ParseCommand(%q) = %+v target %d", tc.text, cmd, cmd.Target())
			}
		})
	}
}
