package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/akulichev/coderecall-backend/internal/adapter/postgres"
	"github.com/akulichev/coderecall-backend/internal/adapter/postgres/progress"
	"github.com/akulichev/coderecall-backend/internal/adapter/provider/problemhub"
	"github.com/akulichev/coderecall-backend/internal/adapter/sqlite"
	"github.com/akulichev/coderecall-backend/internal/config"
	"github.com/akulichev/coderecall-backend/internal/domain"
	catalogsvc "github.com/akulichev/coderecall-backend/internal/service/catalog"
	"github.com/akulichev/coderecall-backend/internal/service/schedule"
	"github.com/akulichev/coderecall-backend/internal/service/stats"
	"github.com/akulichev/coderecall-backend/internal/service/transfer"
	"github.com/akulichev/coderecall-backend/internal/transport/rest"
)

// progressStore is the union of everything the services need from a store
// backend. Both the postgres repo and the sqlite store satisfy it.
type progressStore interface {
	Get(ctx context.Context, id string) (domain.ProgressRecord, error)
	GetAll(ctx context.Context) ([]domain.ProgressRecord, error)
	Put(ctx context.Context, rec domain.ProgressRecord) error
	PutMany(ctx context.Context, recs []domain.ProgressRecord) error
	ReplaceAll(ctx context.Context, recs []domain.ProgressRecord) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Run is the application entry point. It loads configuration, initializes
// the logger, opens the progress store for the configured driver, wires
// the services, and serves HTTP until the process is signalled.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("database_driver", cfg.Database.Driver),
	)

	var (
		store   progressStore
		dbPing  pinger
		closeFn func()
	)

	switch cfg.Database.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Database.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return fmt.Errorf("run migrations: %w", err)
			}
		}
		store = progress.New(pool)
		dbPing = pool
		closeFn = pool.Close
	case "sqlite":
		st, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		store = st
		dbPing = st
		closeFn = func() { _ = st.Close() }
	default:
		return fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	defer closeFn()

	provider := problemhub.NewProvider(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger)

	scheduleService, err := schedule.NewService(logger, store, cfg.Review.Intervals)
	if err != nil {
		return fmt.Errorf("create schedule service: %w", err)
	}
	catalogService := catalogsvc.NewService(logger, provider, store)
	statsService := stats.NewService(logger, catalogService, cfg.Location(), cfg.Review.StreakFreezeDays)
	transferService := transfer.NewService(logger, store)

	handlers := rest.Handlers{
		Progress: rest.NewProgressHandler(scheduleService, logger),
		Catalog:  rest.NewCatalogHandler(catalogService, logger),
		Stats:    rest.NewStatsHandler(statsService, logger),
		Transfer: rest.NewTransferHandler(transferService, logger),
		Health:   rest.NewHealthHandler(dbPing, BuildVersion()),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      rest.NewRouter(handlers, logger, cfg.CORS),
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
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")

	return nil
}
