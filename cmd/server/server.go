package main

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/petbot/internal/config"
	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/handlers/chat"
	"github.com/KirkDiggler/petbot/internal/orchestrators/game"
	"github.com/KirkDiggler/petbot/internal/pkg/clock"
	"github.com/KirkDiggler/petbot/internal/pkg/idgen"
	"github.com/KirkDiggler/petbot/internal/redis"
	"github.com/KirkDiggler/petbot/internal/repositories/player"
	"github.com/KirkDiggler/petbot/internal/rules"
)

// app is the wired game behind the chat handler
type app struct {
	rules   *rules.Rules
	players player.Repository
	handler *chat.Handler
	closers []func() error
}

// Close releases the store connections
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
}

// loadRules returns the canonical rules, or the configured file laid over them
func loadRules(cfg *config.Config) (*rules.Rules, error) {
	if cfg.RulesPath == "" {
		return rules.Default(), nil
	}
	return rules.Load(cfg.RulesPath)
}

// newApp wires the store, the orchestrator and the chat handler
func newApp(ctx context.Context, cfg *config.Config, roller dice.Roller, clk clock.Clock) (*app, error) {
	ruleSet, err := loadRules(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{rules: ruleSet}
	a.players, err = a.openStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	orchestrator, err := game.New(&game.Config{
		PlayerRepo:  a.players,
		Clock:       clk,
		Roller:      roller,
		Rules:       ruleSet,
		IDGenerator: idgen.NewUUID("act"),
		EventBus:    newLoggingBus(events.NewBus()),
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create game orchestrator")
	}

	a.handler, err = chat.NewHandler(&chat.HandlerConfig{
		GameService: orchestrator,
		Rules:       ruleSet,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create chat handler")
	}

	slog.InfoContext(ctx, "game ready",
		"store", cfg.Store,
		"rules_version", ruleSet.Version,
		"weight_floor", ruleSet.WeightFloor,
		"combat", ruleSet.Combat.Policy)
	return a, nil
}

func (a *app) openStore(ctx context.Context, cfg *config.Config) (player.Repository, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
		}
		a.closers = append(a.closers, client.Close)
		return player.NewRedis(&player.RedisConfig{Client: client})
	case config.StoreSQLite:
		repo, err := player.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	default:
		return player.NewInMemory(), nil
	}
}

// newDefaultApp wires the game with real dice and the system clock
func newDefaultApp(ctx context.Context, cfg *config.Config) (*app, error) {
	return newApp(ctx, cfg, dice.DefaultRoller, clock.New())
}
