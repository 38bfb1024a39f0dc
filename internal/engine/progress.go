package engine

import "math"

// Event is a discrete state change produced by ApplyProgress. Events are
// explicit values so the presentation layer never has to diff snapshots.
type Event interface {
	event()
}

// QuestCompleted fires exactly once, when a quest first reaches its goal.
type QuestCompleted struct {
	QuestID string
	Title   string
	XP      int
}

// LevelUp fires once per level gained; a large reward may produce several.
type LevelUp struct {
	From int
	To   int
}

func (QuestCompleted) event() {}
func (LevelUp) event()        {}

// ApplyProgress applies a positive activity delta (reps for static quests,
// kilometers for distance quests) to one quest and resolves the resulting
// experience and level changes. Pure: the input record is never mutated.
//
// Unknown quest ids and already-complete quests are no-ops: the input record
// is returned as-is with no events, so callers can skip persistence.
func ApplyProgress(p Player, questID string, delta float64) (Player, []Event) {
	if delta <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return p, nil
	}

	idx := -1
	for i := range p.Quests {
		if p.Quests[i].ID == questID {
			idx = i
			break
		}
	}
	if idx < 0 || p.Quests[idx].Complete() {
		return p, nil
	}

	out := p
	out.Quests = make([]Quest, len(p.Quests))
	copy(out.Quests, p.Quests)

	q := &out.Quests[idx]
	q.Progress = math.Min(q.Progress+delta, q.Goal)

	var events []Event
	if !q.Complete() {
		return out, events
	}

	// Progress is clamped to the goal, so the threshold can only be crossed
	// once per quest; the reward is awarded at that instant.
	events = append(events, QuestCompleted{QuestID: q.ID, Title: q.Title, XP: q.XPReward})

	out.XP += q.XPReward
	before := out.Level
	out.Level, out.XP = resolveLevel(out.Level, out.XP)
	for lvl := before; lvl < out.Level; lvl++ {
		events = append(events, LevelUp{From: lvl, To: lvl + 1})
	}
	return out, events
}
