// Command cleanup removes uploaded audio files that no entry references.
// It only applies to the local storage driver and is intended to be invoked
// by an external cron job, not as an in-process goroutine.
//
// Files younger than the grace period are left alone so that an upload whose
// entry is still being written is never removed.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/langarchive/internal/adapter/postgres"
	"github.com/heartmarshall/langarchive/internal/adapter/postgres/entry"
	"github.com/heartmarshall/langarchive/internal/adapter/storage/local"
	"github.com/heartmarshall/langarchive/internal/app"
	"github.com/heartmarshall/langarchive/internal/config"
)

const orphanGrace = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Storage.Driver != config.StorageLocal {
		logger.Info("audio cleanup skipped", slog.String("driver", cfg.Storage.Driver))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	store, err := local.New(cfg.Storage.LocalDir)
	if err != nil {
		logger.Error("open upload dir", slog.String("error", err.Error()))
		os.Exit(1)
	}

	refs, err := entry.New(pool).AudioRefs(ctx)
	if err != nil {
		logger.Error("list audio refs failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	keep := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		keep[ref] = struct{}{}
	}

	removed, err := store.Sweep(ctx, keep, time.Now().Add(-orphanGrace))
	if err != nil {
		logger.Error("audio cleanup failed",
			slog.Int("removed", len(removed)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("audio cleanup completed",
		slog.Int("removed", len(removed)),
		slog.Int("referenced", len(keep)),
		slog.String("dir", store.Dir()),
	)
}
