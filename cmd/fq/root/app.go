package root

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"fitquest/internal/config"
	"fitquest/internal/oracle"
	"fitquest/internal/session"
	"fitquest/internal/storage"
)

// openSession wires config, logging, storage and the quest generator into a
// session manager. The returned cleanup closes the database.
func openSession(ctx context.Context) (*session.Manager, func(), error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}

	var generator oracle.Generator = oracle.Static{}
	if cfg.OracleURL != "" {
		generator = oracle.NewClient(
			&http.Client{Timeout: cfg.OracleTimeout},
			cfg.OracleURL,
			cfg.OracleAPIKey,
			cfg.OracleModel,
			logger,
		)
	}

	mgr := session.NewManager(storage.NewSnapshotRepo(db), generator, cfg.QuestsPerDay, logger)
	return mgr, cleanup, nil
}

func parseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return level
}
