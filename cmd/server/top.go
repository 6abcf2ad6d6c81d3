package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/petbot/internal/handlers/chat"
)

var topChatID int64

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the leaderboard of a chat",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newDefaultApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		reply, err := a.handler.HandleMessage(cmd.Context(), &chat.Message{ChatID: topChatID, Text: "/top"})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return err
	},
}

func init() {
	topCmd.Flags().Int64Var(&topChatID, "chat", -1, "chat id")
}
