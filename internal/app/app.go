package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/langarchive/internal/adapter/postgres"
	"github.com/heartmarshall/langarchive/internal/adapter/provider/llm"
	"github.com/heartmarshall/langarchive/internal/adapter/storage/local"
	s3store "github.com/heartmarshall/langarchive/internal/adapter/storage/s3"
	"github.com/heartmarshall/langarchive/internal/config"
	"github.com/heartmarshall/langarchive/internal/transport/middleware"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations when enabled, wires services and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		results, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", len(results)))
	}

	audio, uploadsDir, err := newAudioStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init audio storage: %w", err)
	}

	ai := llm.New(cfg.AI, logger)
	if !ai.Configured() {
		logger.Warn("ai collaborator not configured, enrichment endpoints will fail")
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := NewHTTPHandler(cfg, Deps{
		Pool:       pool,
		Audio:      audio,
		AI:         ai,
		UploadsDir: uploadsDir,
		Version:    BuildVersion(),
	}, limiter, logger)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newAudioStore selects the upload collaborator. uploadsDir is non-empty
// only for the local driver, whose files the HTTP layer serves itself.
func newAudioStore(ctx context.Context, cfg config.StorageConfig) (AudioStore, string, error) {
	switch cfg.Driver {
	case config.StorageS3:
		store, err := s3store.New(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		return store, "", nil
	default:
		store, err := local.New(cfg.LocalDir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
}
