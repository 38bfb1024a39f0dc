package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fitquest/internal/engine"
)

// PlayerKey is the fixed snapshot slot: exactly one player per installation.
const PlayerKey = "player"

// SnapshotRepo persists the player record as one JSON snapshot row.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Load reads the player snapshot. A missing row returns (nil, nil): no
// player yet. An unreadable payload is treated the same way; the corrupt
// row is discarded so the next save starts clean.
func (r *SnapshotRepo) Load(ctx context.Context) (*engine.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, PlayerKey)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot load: %w", err)
	}

	var p engine.Player
	if err := json.Unmarshal([]byte(payload), &p); err != nil || p.Level < 1 {
		_ = r.Delete(ctx)
		return nil, nil
	}
	return &p, nil
}

// Save writes the full record as one atomic upsert.
func (r *SnapshotRepo) Save(ctx context.Context, p *engine.Player) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("snapshot marshal: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, PlayerKey, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("snapshot save: %w", err)
	}
	return nil
}

// Delete discards the snapshot entirely (user-initiated reset).
func (r *SnapshotRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, PlayerKey); err != nil {
		return fmt.Errorf("snapshot delete: %w", err)
	}
	return nil
}
