package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/handlers/chat"
)

var (
	chatID      int64
	playerID    int64
	displayName string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a local chat",
	Long: `Read chat lines from stdin and print the replies. Each line is a command
such as "/feed" or "/fight 7777". Prefix a line with "@<player id>" to act as
another player, e.g. "@7777 /pet".`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&chatID, "chat", -1, "chat id")
	playCmd.Flags().Int64Var(&playerID, "player", 1, "player id")
	playCmd.Flags().StringVar(&displayName, "name", "player", "display name")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newDefaultApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return play(ctx, a.handler, cmd.InOrStdin(), cmd.OutOrStdout(), &chat.Message{
		ChatID:      chatID,
		PlayerID:    playerID,
		DisplayName: displayName,
	})
}

// play answers every line of in until EOF or cancellation
func play(ctx context.Context, handler *chat.Handler, in io.Reader, out io.Writer, as *chat.Message) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		msg := *as
		msg.Text = strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(msg.Text, "@") {
			who, rest, _ := strings.Cut(msg.Text[1:], " ")
			id, err := strconv.ParseInt(who, 10, 64)
			if err != nil {
				fmt.Fprintf(out, "unknown player %q\n", who)
				continue
			}
			msg.PlayerID = id
			msg.DisplayName = "player" + who
			msg.Text = strings.TrimSpace(rest)
		}

		reply, err := handler.HandleMessage(ctx, &msg)
		if err != nil {
			return err
		}
		if reply.Ignored {
			continue
		}
		fmt.Fprintln(out, reply.Text)
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read input")
	}
	return nil
}
