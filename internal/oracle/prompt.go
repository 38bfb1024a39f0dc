package oracle

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are the quest master of a fitness RPG. You design daily ` +
	`real-world exercise quests. Respond with JSON only, no prose: an object ` +
	`{"quests": [...]} where each quest has "id" (short unique slug), "title", ` +
	`"description", "xpReward" (positive integer), "kind" ("static" for rep counts ` +
	`or "distance" for kilometers) and "goal" (positive number: reps or km).`

// BuildPrompt renders the user message for a quest-generation call.
func BuildPrompt(p Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player: %s, level %d, rank %s.\n", p.Name, p.Level, p.Rank)
	if len(p.Answers) > 0 {
		b.WriteString("Onboarding answers:\n")
		for _, a := range p.Answers {
			fmt.Fprintf(&b, "- %s\n", a)
		}
	}
	count := p.Count
	if count < 1 {
		count = 1
	}
	fmt.Fprintf(&b, "Generate %d quests for today, mixing static and distance kinds, ", count)
	b.WriteString("scaled to the player's level and rank.")
	return b.String()
}
