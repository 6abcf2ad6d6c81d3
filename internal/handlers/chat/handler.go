// Package chat turns chat commands into game actions and renders the results
package chat

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/petbot/internal/errors"
	"github.com/KirkDiggler/petbot/internal/rules"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	GameService game.Service
	Rules       *rules.Rules
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GameService == nil {
		vb.RequiredField("GameService")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}

	return vb.Build()
}

// Handler answers chat messages
type Handler struct {
	gameService game.Service
	renderer    *Renderer
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		gameService: cfg.GameService,
		renderer:    NewRenderer(cfg.Rules),
	}, nil
}

// Message is one incoming chat message
type Message struct {
	ChatID      int64
	PlayerID    int64
	DisplayName string
	Text        string
}

// Reply is the text to send back. Ignored is set for messages that are not commands.
type Reply struct {
	Text    string
	Ignored bool
	Result  *game.ActionResult
}

// HandleMessage runs the command in msg
func (h *Handler) HandleMessage(ctx context.Context, msg *Message) (*Reply, error) {
	if msg == nil {
		return nil, errors.InvalidArgument("message is required")
	}

	cmd, ok := ParseCommand(msg.Text)
	if !ok {
		return &Reply{Ignored: true}, nil
	}

	switch cmd.Name {
	case "start", "help":
		return &Reply{Text: h.renderer.Help()}, nil
	}

	action, ok := cmd.Action()
	if !ok {
		return &Reply{Text: "Unknown command. Try /help."}, nil
	}

	input := &game.HandleInput{
		Action:      action,
		ChatID:      msg.ChatID,
		PlayerID:    msg.PlayerID,
		DisplayName: msg.DisplayName,
		Args:        cmd.Args,
	}
	if action == game.ActionFight {
		input.TargetPlayerID = cmd.Target()
	}

	output, err := h.gameService.Handle(ctx, input)
	if errors.IsRejection(err) {
		return &Reply{Text: errors.GetMessage(err)}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to handle command",
			"command", cmd.Name,
			"chat_id", msg.ChatID,
			"player_id", msg.PlayerID,
			"error", err)
		return &Reply{Text: "Something went wrong while handling the command."}, nil
	}

	return &Reply{
		Text:   h.renderer.Render(output.Result),
		Result: output.Result,
	}, nil
}
