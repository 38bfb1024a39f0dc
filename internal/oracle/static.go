package oracle

import (
	"context"
	"fmt"

	"fitquest/internal/engine"
)

// Static is the offline fallback generator: a fixed daily routine scaled by
// player level. Used when no oracle endpoint is configured.
type Static struct{}

func (Static) GenerateQuests(_ context.Context, profile Profile) ([]engine.Quest, error) {
	level := profile.Level
	if level < 1 {
		level = 1
	}

	templates := []engine.Quest{
		{ID: "pushups", Title: "Push-ups", Description: "Strict form, chest to the floor.", XPReward: 40, Kind: engine.KindStatic, Goal: float64(10 + 5*level)},
		{ID: "squats", Title: "Squats", Description: "Bodyweight squats, full depth.", XPReward: 40, Kind: engine.KindStatic, Goal: float64(15 + 5*level)},
		{ID: "situps", Title: "Sit-ups", Description: "Controlled reps, no swinging.", XPReward: 30, Kind: engine.KindStatic, Goal: float64(10 + 5*level)},
		{ID: "daily-run", Title: "Daily run", Description: "Cover the distance outdoors, walking counts.", XPReward: 80, Kind: engine.KindDistance, Goal: 1 + 0.5*float64(level)},
	}

	count := profile.Count
	if count < 1 || count > len(templates) {
		count = len(templates)
	}
	quests := make([]engine.Quest, count)
	copy(quests, templates[:count])
	for i := range quests {
		quests[i].ID = fmt.Sprintf("%s-l%d", quests[i].ID, level)
	}
	return quests, nil
}
