package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/config"
	"github.com/pairpad/pairpad-server/internal/core"
	"github.com/pairpad/pairpad-server/internal/store"
	"github.com/pairpad/pairpad-server/internal/store/sqlite"
	transporthttp "github.com/pairpad/pairpad-server/internal/transport/http"
)

// App wires together the sync engine, the store and the transport layer.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	manager         *core.Manager
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration. It fails
// when the store cannot be confirmed reachable within the configured
// wait budget: the server must not accept connections against a store
// it could not reach.
func New(ctx context.Context, cfg config.Config, logger *zerolog.Logger) (*App, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	if err := waitForStore(ctx, st, cfg.StoreWaitAttempts, cfg.StoreWaitDelay, logger); err != nil {
		st.Close()
		return nil, err
	}

	logger.Info().Str("db_path", cfg.DatabasePath).Msg("store initialized")

	manager := core.NewManager(logger)
	server := transporthttp.NewServer(manager, st, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		manager:         manager,
		store:           st,
		log:             logger,
	}, nil
}

// waitForStore pings the store with a fixed delay between attempts.
// Exhausting the attempts is fatal to startup.
func waitForStore(ctx context.Context, st store.Store, attempts int, delay time.Duration, logger *zerolog.Logger) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		logger.Debug().Int("attempt", attempt).Int("max_attempts", attempts).Msg("checking store")

		if lastErr = st.Ping(ctx); lastErr == nil {
			return nil
		}
		logger.Warn().Err(lastErr).Int("attempt", attempt).Msg("store not ready yet")

		if attempt == attempts {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("store unreachable after %d attempts: %w", attempts, lastErr)
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	a.log.Info().Str("addr", a.server.Addr).Msg("server listening")

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the store and other resources.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
