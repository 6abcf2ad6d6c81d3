package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/petbot/internal/entities"
	"github.com/KirkDiggler/petbot/internal/rules"
	"github.com/KirkDiggler/petbot/internal/services/game"
)

// Renderer turns action results into English chat text
type Renderer struct {
	catalog *rules.Catalog
	rules   *rules.Rules
}

// NewRenderer creates a renderer for the rule set's items
func NewRenderer(r *rules.Rules) *Renderer {
	return &Renderer{catalog: r.Catalog(), rules: r}
}

// Help lists the commands
func (r *Renderer) Help() string {
	lines := []string{
		"Raise your creature and keep it alive.",
		"/feed [item]: free feed once a day, optionally one extra with an item",
		"/zonewalk [item]: loot run once a day, optionally one extra with an item",
		"/wheel: spin the reward wheel once a day",
		fmt.Sprintf("/pet: pet your creature (every %s)", formatWait(r.rules.Cooldowns.Pet)),
		fmt.Sprintf("/fight <player id>: duel another creature (every %s)", formatWait(r.rules.Cooldowns.Fight)),
		"/name <name>: rename your creature",
		"/inventory: list your items",
		"/recruits: show the recruit pool",
		"/recruit: replace a dead creature",
		"/top: heaviest creatures in this chat",
	}
	return strings.Join(lines, "\n")
}

// Render formats result
func (r *Renderer) Render(result *game.ActionResult) string {
	if result == nil {
		return ""
	}
	if result.Outcome != game.OutcomeOK {
		return r.rejection(result)
	}

	var lines []string
	lostFight := false
	for _, event := range result.Events {
		switch event.Kind {
		case game.EventFightLost:
			lostFight = true
		case game.EventLooted:
			if lostFight {
				lines = append(lines, "Loot lost: "+r.items(event.Items))
				continue
			}
			lines = append(lines, "Loot taken: "+r.items(event.Items))
			continue
		}
		lines = append(lines, r.event(result, event))
	}

	switch result.Action {
	case game.ActionInventory:
		lines = append(lines, r.inventory(result.Inventory))
	case game.ActionCheckRecruits:
		lines = append(lines, fmt.Sprintf("Recruits available: %d.", result.Recruits))
	case game.ActionTop:
		lines = append(lines, r.leaderboard(result.Leaderboard))
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) event(result *game.ActionResult, event game.Event) string {
	pet := result.PetName
	switch event.Kind {
	case game.EventFreeFeed:
		return fmt.Sprintf("Free feed: %s", weightChange(event))
	case game.EventItemFeed:
		return fmt.Sprintf("Fed %s: %s", r.catalog.DisplayName(event.Item), weightChange(event))
	case game.EventZonewalk:
		prefix := fmt.Sprintf("%s came back from the zone", pet)
		if event.Item != "" {
			prefix += fmt.Sprintf(" (paid with %s)", r.catalog.DisplayName(event.Item))
		}
		if event.Delta == 0 {
			return prefix + " unchanged."
		}
		return fmt.Sprintf("%s: %s", prefix, weightChange(event))
	case game.EventZonewalkDeath:
		return fmt.Sprintf("%s stepped into an anomaly and never came back.", pet)
	case game.EventLoot:
		return "Found: " + r.items(event.Items)
	case game.EventWheelNothing:
		return "The wheel stops on nothing. Better luck tomorrow."
	case game.EventWheelItem:
		return fmt.Sprintf("The wheel gives %s x%d.", r.catalog.DisplayName(event.Item), event.Quantity)
	case game.EventWheelWeight:
		return fmt.Sprintf("The wheel gives weight: %s", weightChange(event))
	case game.EventPet:
		if event.Delta == 0 {
			return fmt.Sprintf("%s grunts happily.", pet)
		}
		return fmt.Sprintf("You petted %s: %s", pet, weightChange(event))
	case game.EventRenamed:
		return fmt.Sprintf("Your creature is now called %s.", event.Name)
	case game.EventRecruited:
		return fmt.Sprintf("A new creature joins you: %s (%d kg).", event.Name, event.Weight)
	case game.EventFightWon:
		return fmt.Sprintf("%s beat %s: %s", pet, event.Name, weightChange(event))
	case game.EventFightLost:
		return fmt.Sprintf("%s lost to %s: %s", pet, event.Name, weightChange(event))
	case game.EventDied:
		line := "Your creature died."
		if result.Opponent != nil && result.Opponent.Died {
			line = fmt.Sprintf("%s died.", result.Opponent.PetName)
		}
		if len(event.Items) > 0 {
			line += " Lost: " + r.items(event.Items)
		}
		if result.Died {
			line += " Use /recruit to raise a new one."
		}
		return line
	default:
		return string(event.Kind)
	}
}

func (r *Renderer) rejection(result *game.ActionResult) string {
	pet := result.PetName
	switch result.Outcome {
	case game.OutcomeQuotaExceeded:
		line := fmt.Sprintf("Daily %s is used up. Come back in %s.", result.Action, formatWait(result.RetryAfter))
		if len(result.Hint) > 0 {
			line += fmt.Sprintf(" Or use an item: /%s <item>. You have %s", result.Action, r.entries(result.Hint))
		}
		return line
	case game.OutcomeCooldownActive:
		return fmt.Sprintf("Too soon to %s again. Try in %s.", result.Action, formatWait(result.RetryAfter))
	case game.OutcomeInsufficientItem:
		return fmt.Sprintf("You have no %s.", r.catalog.DisplayName(result.Item))
	case game.OutcomeUnknownItem:
		return fmt.Sprintf("There is no item called %q.", result.Item)
	case game.OutcomeUnusableItem:
		return fmt.Sprintf("%s cannot be used for %s.", r.catalog.DisplayName(result.Item), result.Action)
	case game.OutcomeUnknownTarget:
		return "Pick an opponent from this chat: /fight <player id>."
	case game.OutcomeDeadCreature:
		return fmt.Sprintf("Your creature is dead. Recruits available: %d. Use /recruit.", result.Recruits)
	case game.OutcomeNoFood:
		return fmt.Sprintf("%s already ate today and you have nothing to feed it.", pet)
	case game.OutcomeNoRecruits:
		return "No recruits left. A new one arrives every day."
	case game.OutcomeAlreadyAlive:
		return fmt.Sprintf("%s is alive. Recruits are only for dead creatures.", pet)
	case game.OutcomeTargetDead:
		name := "That creature"
		if result.Opponent != nil {
			name = result.Opponent.PetName
		}
		return fmt.Sprintf("%s is already dead.", name)
	case game.OutcomeInvalidArgument:
		return fmt.Sprintf("Invalid input: %s.", result.Reason)
	default:
		return fmt.Sprintf("Something went wrong: %s. Try again later.", result.Reason)
	}
}

func (r *Renderer) inventory(entries []entities.InventoryEntry) string {
	if len(entries) == 0 {
		return "Your inventory is empty."
	}
	return "Inventory: " + r.entries(entries)
}

func (r *Renderer) leaderboard(entries []game.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "No living creatures in this chat yet."
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Top creatures:")
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s (%s): %d kg, %d days", e.Rank, e.PetName, e.DisplayName, e.Weight, e.DaysAlive))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) entries(entries []entities.InventoryEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s x%d", r.catalog.DisplayName(e.Item), e.Quantity))
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) items(items map[string]int) string {
	return r.entries(entities.Inventory(items).Items())
}

func weightChange(event game.Event) string {
	return fmt.Sprintf("%d kg -> %d kg (%+d)", event.WeightBefore, event.Weight, event.Delta)
}

// formatWait rounds up to whole minutes
func formatWait(d time.Duration) string {
	minutes := int((d + time.Minute - 1) / time.Minute)
	hours, minutes := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", minutes)
	case minutes == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
