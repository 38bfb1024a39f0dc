package engine

import "testing"

func testPlayer(quests ...Quest) Player {
	p := NewPlayer("Jinwoo", RankE, "2024-01-01")
	p.Quests = quests
	return p
}

func TestLevelThreshold(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 200},
		{5, 500},
		{0, 100}, // clamped to level 1
	}
	for _, c := range cases {
		if got := LevelThreshold(c.level); got != c.want {
			t.Fatalf("LevelThreshold(%d)=%d, want %d", c.level, got, c.want)
		}
	}
}

func TestApplyProgressPartial(t *testing.T) {
	p := testPlayer(Quest{ID: "q1", Title: "Push-ups", XPReward: 50, Kind: KindStatic, Goal: 100})

	out, events := ApplyProgress(p, "q1", 30)
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
	q, ok := out.Quest("q1")
	if !ok || q.Progress != 30 {
		t.Fatalf("progress=%v, want 30", q.Progress)
	}
	if out.XP != 0 || out.Level != 1 {
		t.Fatalf("xp/level changed on partial progress: xp=%d level=%d", out.XP, out.Level)
	}
	// Input record must be untouched.
	if p.Quests[0].Progress != 0 {
		t.Fatalf("input record mutated: progress=%v", p.Quests[0].Progress)
	}
}

func TestApplyProgressClampAndSingleAward(t *testing.T) {
	p := testPlayer(Quest{ID: "q1", Title: "Squats", XPReward: 40, Kind: KindStatic, Goal: 50, Progress: 45})

	out, events := ApplyProgress(p, "q1", 500)
	q, _ := out.Quest("q1")
	if q.Progress != 50 {
		t.Fatalf("progress=%v, want clamped to 50", q.Progress)
	}
	if len(events) != 1 {
		t.Fatalf("events=%d, want 1 QuestCompleted", len(events))
	}
	qc, ok := events[0].(QuestCompleted)
	if !ok || qc.QuestID != "q1" || qc.XP != 40 {
		t.Fatalf("unexpected event %#v", events[0])
	}
	if out.XP != 40 {
		t.Fatalf("xp=%d, want 40", out.XP)
	}

	// Re-applying to the completed quest is a no-op: no events, equal record.
	again, events2 := ApplyProgress(out, "q1", 10)
	if len(events2) != 0 {
		t.Fatalf("completed quest produced events: %d", len(events2))
	}
	if again.XP != out.XP || again.Level != out.Level {
		t.Fatalf("completed quest changed record: %+v", again)
	}
	q2, _ := again.Quest("q1")
	if q2.Progress != 50 {
		t.Fatalf("completed quest progress moved: %v", q2.Progress)
	}
}

func TestApplyProgressUnknownQuest(t *testing.T) {
	p := testPlayer(Quest{ID: "q1", XPReward: 10, Kind: KindStatic, Goal: 10})
	out, events := ApplyProgress(p, "nope", 5)
	if len(events) != 0 {
		t.Fatalf("unknown quest produced events")
	}
	if out.XP != p.XP || out.Level != p.Level || len(out.Quests) != len(p.Quests) {
		t.Fatalf("unknown quest changed record")
	}
}

func TestApplyProgressRejectsBadDelta(t *testing.T) {
	p := testPlayer(Quest{ID: "q1", XPReward: 10, Kind: KindStatic, Goal: 10})
	for _, d := range []float64{0, -1} {
		out, events := ApplyProgress(p, "q1", d)
		if len(events) != 0 {
			t.Fatalf("delta %v produced events", d)
		}
		q, _ := out.Quest("q1")
		if q.Progress != 0 {
			t.Fatalf("delta %v moved progress to %v", d, q.Progress)
		}
	}
}

// Ground truth for the rollover arithmetic: level 1, xp 0, +250 XP.
// 250 >= T(1)=100 -> level 2, xp 150; 150 < T(2)=200 -> stop.
func TestLevelRolloverGroundTruth(t *testing.T) {
	p := testPlayer(Quest{ID: "q1", Title: "Dungeon run", XPReward: 250, Kind: KindDistance, Goal: 5, Progress: 4.5})

	out, events := ApplyProgress(p, "q1", 1)
	if out.Level != 2 {
		t.Fatalf("level=%d, want 2", out.Level)
	}
	if out.XP != 150 {
		t.Fatalf("xp=%d, want 150", out.XP)
	}

	ups := 0
	for _, e := range events {
		if lu, ok := e.(LevelUp); ok {
			ups++
			if lu.To != lu.From+1 {
				t.Fatalf("non-adjacent level-up %+v", lu)
			}
		}
	}
	if ups != 1 {
		t.Fatalf("level-up events=%d, want 1", ups)
	}
}

func TestLevelRolloverMultiple(t *testing.T) {
	// 350 XP from level 1: 350-100=250 (level 2), 250-200=50 (level 3), 50 < 300.
	p := testPlayer(Quest{ID: "q1", XPReward: 350, Kind: KindStatic, Goal: 1})

	out, events := ApplyProgress(p, "q1", 1)
	if out.Level != 3 || out.XP != 50 {
		t.Fatalf("level=%d xp=%d, want level 3 xp 50", out.Level, out.XP)
	}

	var ups []LevelUp
	for _, e := range events {
		if lu, ok := e.(LevelUp); ok {
			ups = append(ups, lu)
		}
	}
	if len(ups) != 2 || ups[0].From != 1 || ups[1].To != 3 {
		t.Fatalf("level-up events=%+v, want 1->2, 2->3", ups)
	}

	// Conservation: residual xp plus consumed thresholds equals the gain.
	consumed := 0
	for lvl := 1; lvl < out.Level; lvl++ {
		consumed += LevelThreshold(lvl)
	}
	if out.XP+consumed != 350 {
		t.Fatalf("xp accounting off: %d + %d != 350", out.XP, consumed)
	}
}

func TestResolveLevelInvariant(t *testing.T) {
	for _, gain := range []int{0, 99, 100, 101, 599, 600, 10_000} {
		level, xp := resolveLevel(1, gain)
		if xp >= LevelThreshold(level) {
			t.Fatalf("gain %d: residual %d >= threshold %d at level %d", gain, xp, LevelThreshold(level), level)
		}
		consumed := 0
		for l := 1; l < level; l++ {
			consumed += LevelThreshold(l)
		}
		if xp+consumed != gain {
			t.Fatalf("gain %d: %d + %d != %d", gain, xp, consumed, gain)
		}
	}
}

func TestParseRankAndKind(t *testing.T) {
	if got := ParseRank(" s "); got != RankS {
		t.Fatalf("ParseRank(s)=%s", got)
	}
	if got := ParseRank("zz"); got != DefaultRank {
		t.Fatalf("ParseRank(zz)=%s, want default", got)
	}
	if k, ok := ParseQuestKind("Distance"); !ok || k != KindDistance {
		t.Fatalf("ParseQuestKind(Distance)=%s ok=%v", k, ok)
	}
	if _, ok := ParseQuestKind("sprint"); ok {
		t.Fatalf("ParseQuestKind(sprint) accepted")
	}
}
