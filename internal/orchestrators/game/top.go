package game

import (
	"context"
	"log/slog"
	"time"

	playerrepo "github.com/KirkDiggler/petbot/internal/repositories/player"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

// top reads the leaderboard without a transaction. It works for anyone,
// including players who never played in the chat.
func (o *Orchestrator) top(ctx context.Context, input *game.HandleInput, actionID string, now time.Time) *game.ActionResult {
	out, err := o.playerRepo.TopByWeight(ctx, &playerrepo.TopByWeightInput{
		ChatID: input.ChatID,
		Limit:  o.rules.TopLimit,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to load leaderboard",
			"action_id", actionID,
			"chat_id", input.ChatID,
			"error", err)
		return failure(input.Action, actionID, err)
	}

	result := &game.ActionResult{
		ActionID:    actionID,
		Action:      input.Action,
		Outcome:     game.OutcomeOK,
		Leaderboard: make([]game.LeaderboardEntry, 0, len(out.Players)),
	}
	for i, p := range out.Players {
		result.Leaderboard = append(result.Leaderboard, game.LeaderboardEntry{
			Rank:        i + 1,
			PlayerID:    p.PlayerID,
			DisplayName: p.DisplayName,
			PetName:     p.PetName,
			Weight:      p.Weight,
			DaysAlive:   p.DaysAlive(now),
		})
	}
	return result
}
