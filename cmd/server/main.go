// Package main is the entry point for the petbot command
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/petbot/internal/config"
)

var (
	cfg *config.Config

	storeFlag      string
	redisAddrFlag  string
	sqlitePathFlag string
	rulesFlag      string
	logLevelFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "petbot",
	Short: "Virtual pet chat game",
	Long: `petbot runs the pet economy: feeding, loot runs, the reward wheel, duels,
death and recruitment. Settings come from PETBOT_* environment variables and
can be overridden with flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&storeFlag, "store", "", "player store: memory, redis or sqlite (PETBOT_STORE)")
	flags.StringVar(&redisAddrFlag, "redis-addr", "", "redis address (PETBOT_REDIS_ADDR)")
	flags.StringVar(&sqlitePathFlag, "sqlite-path", "", "sqlite database file (PETBOT_SQLITE_PATH)")
	flags.StringVar(&rulesFlag, "rules", "", "YAML rule file laid over the canonical rules (PETBOT_RULES)")
	flags.StringVar(&logLevelFlag, "log-level", "", "debug, info, warn or error (PETBOT_LOG_LEVEL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(rulesCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Parse()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		loaded.Store = storeFlag
	}
	if flags.Changed("redis-addr") {
		loaded.RedisAddr = redisAddrFlag
	}
	if flags.Changed("sqlite-path") {
		loaded.SQLitePath = sqlitePathFlag
	}
	if flags.Changed("rules") {
		loaded.RulesPath = rulesFlag
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevelFlag
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	// logs go to stderr so they never mix with chat replies
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: loaded.SlogLevel(),
	})))

	cfg = loaded
	return nil
}
