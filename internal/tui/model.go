package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fitquest/internal/engine"
	"fitquest/internal/session"
)

type boardModel struct {
	ctx context.Context
	mgr *session.Manager

	width  int
	height int

	player   engine.Player
	loaded   bool
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	player engine.Player
	err    error
}

type loggedMsg struct {
	questID string
	res     *session.UpdateResult
	err     error
}

type ackedMsg struct {
	player engine.Player
	err    error
}

func newBoardModel(ctx context.Context, mgr *session.Manager) boardModel {
	return boardModel{
		ctx:     ctx,
		mgr:     mgr,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.mgr.Load(m.ctx)
		return loadedMsg{player: p, err: err}
	}
}

func (m boardModel) logCmd(questID string, amount float64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.mgr.LogActivity(m.ctx, questID, amount)
		return loggedMsg{questID: questID, res: res, err: err}
	}
}

func (m boardModel) ackCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.mgr.AcknowledgeLevelUp(m.ctx)
		return ackedMsg{player: p, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		m.loaded = true
		if m.selected >= len(m.player.Quests) {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case loggedMsg:
		if msg.err != nil {
			m.lastLog = "Log failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.res.Player
		m.lastLog = describeUpdate(msg.questID, msg.res)
		return m, nil
	case ackedMsg:
		if msg.err != nil {
			m.lastLog = "Dismiss failed: " + msg.err.Error()
			return m, nil
		}
		m.player = msg.player
		m.lastLog = "Level-up dismissed. Onward."
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.player.Quests)-1 {
				m.selected++
			}
			return m, nil
		case "enter", "+", "l":
			if q, ok := m.selectedQuest(); ok {
				return m, m.logCmd(q.ID, logAmount(q))
			}
			return m, nil
		case "a", "esc":
			if m.player.PendingLevelUp > 0 {
				return m, m.ackCmd()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) selectedQuest() (engine.Quest, bool) {
	if !m.loaded || m.selected < 0 || m.selected >= len(m.player.Quests) {
		return engine.Quest{}, false
	}
	return m.player.Quests[m.selected], true
}

// logAmount is the per-keypress increment: one rep for static quests, a
// tenth of a kilometer for distance quests.
func logAmount(q engine.Quest) float64 {
	if q.Kind == engine.KindDistance {
		return 0.1
	}
	return 1
}

func describeUpdate(questID string, res *session.UpdateResult) string {
	if !res.Synced {
		return fmt.Sprintf("%q is already complete.", questID)
	}
	parts := []string{fmt.Sprintf("Logged progress on %q.", questID)}
	for _, e := range res.Events {
		switch e := e.(type) {
		case engine.QuestCompleted:
			parts = append(parts, fmt.Sprintf("%s complete, +%d XP!", e.Title, e.XP))
		case engine.LevelUp:
			parts = append(parts, fmt.Sprintf("Level %d → %d!", e.From, e.To))
		}
	}
	return strings.Join(parts, " ")
}
