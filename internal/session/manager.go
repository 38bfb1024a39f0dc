// Package session owns the authoritative player record: loading and saving
// the single snapshot, the daily quest refresh, and one-shot notifications.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"fitquest/internal/engine"
	"fitquest/internal/oracle"
	"fitquest/internal/storage"
)

// ErrNoPlayer means no snapshot exists yet: onboarding is required.
var ErrNoPlayer = errors.New("no player record yet")

// ErrPlayerExists guards onboarding against clobbering an existing record.
var ErrPlayerExists = errors.New("player record already exists")

// ErrQuestNotFound reports an id that matches no active quest.
var ErrQuestNotFound = errors.New("quest not found")

// ErrInvalidDelta reports a non-positive or non-finite activity amount,
// rejected before the progression engine runs.
var ErrInvalidDelta = errors.New("activity amount must be a positive number")

// UpdateResult describes one applied mutation. Synced is the transient
// acknowledgment that a snapshot write happened; callers use it to
// distinguish no-ops from changes.
type UpdateResult struct {
	Player engine.Player
	Events []engine.Event
	Synced bool
}

// Manager coordinates the record's lifecycle. All mutations run strictly
// sequentially from the caller's event loop; the manager itself keeps no
// record state between calls.
type Manager struct {
	snapshots    *storage.SnapshotRepo
	generator    oracle.Generator
	questsPerDay int
	logger       *slog.Logger

	now func() time.Time
}

func NewManager(snapshots *storage.SnapshotRepo, generator oracle.Generator, questsPerDay int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if questsPerDay < 1 {
		questsPerDay = 1
	}
	return &Manager{
		snapshots:    snapshots,
		generator:    generator,
		questsPerDay: questsPerDay,
		logger:       logger,
		now:          time.Now,
	}
}

// today is the current calendar date in the local timezone.
func (m *Manager) today() string {
	return m.now().Format("2006-01-02")
}

// Load returns the current record, running the daily refresh first if the
// calendar day changed since the record was last active.
func (m *Manager) Load(ctx context.Context) (engine.Player, error) {
	p, err := m.snapshots.Load(ctx)
	if err != nil {
		return engine.Player{}, err
	}
	if p == nil {
		return engine.Player{}, ErrNoPlayer
	}
	refreshed, _, err := m.refreshIfStale(ctx, *p)
	return refreshed, err
}

// Refresh forces the daily-refresh check now and reports whether the day
// rolled over.
func (m *Manager) Refresh(ctx context.Context) (engine.Player, bool, error) {
	p, err := m.snapshots.Load(ctx)
	if err != nil {
		return engine.Player{}, false, err
	}
	if p == nil {
		return engine.Player{}, false, ErrNoPlayer
	}
	return m.refreshIfStale(ctx, *p)
}

// refreshIfStale replaces yesterday's quests and zeroes the daily counters
// when the stored date differs from today. A generator failure degrades to
// an empty quest set; the record's xp/level/rank are never touched.
func (m *Manager) refreshIfStale(ctx context.Context, p engine.Player) (engine.Player, bool, error) {
	today := m.today()
	if p.LastActive == today {
		return p, false, nil
	}

	p.Quests = nil
	p.DailySteps = 0
	p.DailyDistanceKM = 0
	p.LastActive = today

	quests, err := m.generator.GenerateQuests(ctx, oracle.Profile{
		Name:  p.Name,
		Level: p.Level,
		Rank:  p.Rank,
		Count: m.questsPerDay,
	})
	if err != nil {
		m.logger.Warn("daily quest generation failed, continuing with empty quest set", "error", err)
	} else {
		p.Quests = quests
	}

	if err := m.snapshots.Save(ctx, &p); err != nil {
		return engine.Player{}, false, err
	}
	m.logger.Info("daily refresh", "date", today, "quests", len(p.Quests))
	return p, true, nil
}

// Onboard creates the player record from the questionnaire results. A
// generator failure is returned without persisting anything, so the caller
// can retry.
func (m *Manager) Onboard(ctx context.Context, name string, rank engine.Rank, answers []string) (engine.Player, error) {
	existing, err := m.snapshots.Load(ctx)
	if err != nil {
		return engine.Player{}, err
	}
	if existing != nil {
		return engine.Player{}, ErrPlayerExists
	}

	p := engine.NewPlayer(name, rank, m.today())
	quests, err := m.generator.GenerateQuests(ctx, oracle.Profile{
		Name:    p.Name,
		Level:   p.Level,
		Rank:    p.Rank,
		Answers: answers,
		Count:   m.questsPerDay,
	})
	if err != nil {
		return engine.Player{}, fmt.Errorf("generate starting quests: %w", err)
	}
	p.Quests = quests

	if err := m.snapshots.Save(ctx, &p); err != nil {
		return engine.Player{}, err
	}
	m.logger.Info("player created", "name", p.Name, "rank", p.Rank, "quests", len(p.Quests))
	return p, nil
}

// LogActivity applies an activity delta (reps or kilometers) to one quest.
// Invalid amounts are rejected here, before any record mutation. Applying
// to an already-complete quest is a no-op with Synced=false.
func (m *Manager) LogActivity(ctx context.Context, questID string, delta float64) (*UpdateResult, error) {
	if delta <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return nil, ErrInvalidDelta
	}

	p, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}

	quest, ok := p.Quest(questID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrQuestNotFound, questID)
	}
	if quest.Complete() {
		return &UpdateResult{Player: p, Synced: false}, nil
	}

	updated, events := engine.ApplyProgress(p, questID, delta)
	switch quest.Kind {
	case engine.KindStatic:
		updated.DailySteps += int(delta)
	case engine.KindDistance:
		updated.DailyDistanceKM += delta
	}
	for _, e := range events {
		if up, ok := e.(engine.LevelUp); ok && up.To > updated.PendingLevelUp {
			updated.PendingLevelUp = up.To
		}
	}

	if err := m.snapshots.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &UpdateResult{Player: updated, Events: events, Synced: true}, nil
}

// ApplyDistance feeds a computed kilometer delta from location tracking.
func (m *Manager) ApplyDistance(ctx context.Context, questID string, km float64) error {
	_, err := m.LogActivity(ctx, questID, km)
	return err
}

// AcknowledgeLevelUp clears the pending level-up notice. It never re-fires
// for the same level: a new notice requires a further level gain.
func (m *Manager) AcknowledgeLevelUp(ctx context.Context) (engine.Player, error) {
	p, err := m.Load(ctx)
	if err != nil {
		return engine.Player{}, err
	}
	if p.PendingLevelUp == 0 {
		return p, nil
	}
	p.PendingLevelUp = 0
	if err := m.snapshots.Save(ctx, &p); err != nil {
		return engine.Player{}, err
	}
	return p, nil
}

// Reset discards the persisted snapshot entirely; the next start goes back
// through onboarding.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.snapshots.Delete(ctx); err != nil {
		return err
	}
	m.logger.Info("player record reset")
	return nil
}
