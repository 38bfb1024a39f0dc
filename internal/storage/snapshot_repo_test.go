package storage

import (
	"context"
	"path/filepath"
	"testing"

	"fitquest/internal/engine"
)

func newTestRepo(t *testing.T) *SnapshotRepo {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSnapshotRepo(db)
}

func TestLoadMissingReturnsNil(t *testing.T) {
	repo := newTestRepo(t)
	p, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil player, got %+v", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := engine.NewPlayer("Jinwoo", engine.RankD, "2024-01-01")
	in.Quests = []engine.Quest{{ID: "q1", Title: "Run", XPReward: 80, Kind: engine.KindDistance, Goal: 5, Progress: 2.5}}
	in.DailySteps = 120
	if err := repo.Save(ctx, &in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out == nil {
		t.Fatalf("expected player, got nil")
	}
	if out.Name != "Jinwoo" || out.Rank != engine.RankD || out.DailySteps != 120 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if len(out.Quests) != 1 || out.Quests[0].Progress != 2.5 {
		t.Fatalf("quest round trip mismatch: %+v", out.Quests)
	}
}

func TestCorruptPayloadTreatedAsAbsent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.db.ExecContext(ctx, `INSERT INTO snapshots (key, payload) VALUES (?, ?)`, PlayerKey, "{not json"); err != nil {
		t.Fatalf("insert corrupt payload: %v", err)
	}

	p, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != nil {
		t.Fatalf("corrupt payload produced a player: %+v", p)
	}

	// The corrupt row must be gone so a new onboarding can save cleanly.
	var n int
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("corrupt row not discarded, %d rows left", n)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := engine.NewPlayer("Jinwoo", engine.RankE, "2024-01-01")
	if err := repo.Save(ctx, &p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}
}
