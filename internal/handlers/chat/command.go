package chat

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/petbot/internal/services/game"
)

// Command is a parsed chat command
type Command struct {
	// Name is the lower-cased command without the slash or bot mention
	Name string
	Args string
}

// ParseCommand splits "/name@bot args" into its parts. Text that is not a
// command returns false.
func ParseCommand(text string) (*Command, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return nil, false
	}

	head, args := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, args = text[:i], text[i:]
	}
	name := strings.ToLower(strings.TrimPrefix(head, "/"))
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return nil, false
	}

	return &Command{Name: name, Args: strings.TrimSpace(args)}, true
}

var actions = map[string]game.ActionKind{
	"feed":      game.ActionFeed,
	"pet":       game.ActionPet,
	"zonewalk":  game.ActionZonewalk,
	"wheel":     game.ActionWheel,
	"name":      game.ActionName,
	"recruit":   game.ActionRecruit,
	"recruits":  game.ActionCheckRecruits,
	"fight":     game.ActionFight,
	"inventory": game.ActionInventory,
	"inv":       game.ActionInventory,
	"top":       game.ActionTop,
}

// Action maps the command to a game action
func (c *Command) Action() (game.ActionKind, bool) {
	action, ok := actions[c.Name]
	return action, ok
}

// Target reads the fight target from the arguments. Zero means none was given.
func (c *Command) Target() int64 {
	fields := strings.Fields(c.Args)
	if len(fields) == 0 {
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[0], "@"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
