package tui

import (
	"fmt"
	"strings"

	"fitquest/internal/engine"
	"fitquest/internal/ui"
)

func (m boardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…") + "\n"
	}
	if m.err != nil {
		return ui.Bad.Render(ui.IconError+" "+m.err.Error()) + "\n"
	}

	var b strings.Builder

	p := m.player
	header := fmt.Sprintf("%s  %s · Lv %d · Rank %s · %d/%d XP",
		ui.IconSparkle, p.Name, p.Level, p.Rank, p.XP, engine.LevelThreshold(p.Level))
	b.WriteString(ui.Title.Render(header))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(fmt.Sprintf("today: %d reps · %.2f km", p.DailySteps, p.DailyDistanceKM)))
	b.WriteString("\n\n")

	if p.PendingLevelUp > 0 {
		banner := fmt.Sprintf("%s %s  You reached level %d! (a to dismiss)", ui.IconTrophy, ui.BadgeLevelUp, p.PendingLevelUp)
		b.WriteString(ui.Panel.Render(ui.Gold.Render(banner)))
		b.WriteString("\n\n")
	}

	if len(p.Quests) == 0 {
		b.WriteString(ui.Muted.Render("No quests today. Try `fq refresh` later."))
		b.WriteString("\n")
	}
	for i, q := range p.Quests {
		cursor := "  "
		line := fmt.Sprintf("%s %s %s  %s %s", ui.KindIcon(string(q.Kind)), q.Title,
			questGoal(q), ui.ProgressBar(q.Progress, q.Goal, 10), xpTag(q))
		if i == m.selected {
			cursor = ui.SelectedRow.Render("▸ ")
			line = ui.SelectedRow.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("↑/↓ select · enter log · r refresh · q quit"))
	b.WriteString("\n")
	return b.String()
}

func questGoal(q engine.Quest) string {
	if q.Kind == engine.KindDistance {
		return ui.Muted.Render(fmt.Sprintf("%.1f/%.1f km", q.Progress, q.Goal))
	}
	return ui.Muted.Render(fmt.Sprintf("%.0f/%.0f reps", q.Progress, q.Goal))
}

func xpTag(q engine.Quest) string {
	if q.Complete() {
		return ui.Good.Render(ui.IconDone)
	}
	return ui.Gold.Render(fmt.Sprintf("+%d xp", q.XPReward))
}
