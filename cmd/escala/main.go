package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/escala/internal/application"
	"github.com/example/escala/internal/config"
	httptransport "github.com/example/escala/internal/http"
	"github.com/example/escala/internal/logging"
	"github.com/example/escala/internal/persistence"
	"github.com/example/escala/internal/persistence/memory"
	"github.com/example/escala/internal/persistence/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, slog.LevelInfo).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Level())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	backend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	idGenerator, err := application.NewSnowflakeIDs(cfg.IDNode)
	if err != nil {
		return err
	}

	now := time.Now
	store := application.NewStoreWithLogger(ctx, persistence.NewGateway(backend, logger), seedFor(cfg, now()), idGenerator, now, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           newHandler(store, now, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("escala API listening", "addr", server.Addr, "storage", storageKind(cfg))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type backendCloser interface {
	persistence.Backend
	io.Closer
}

// openBackend returns the configured storage, migrated and ready for use.
func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (backendCloser, error) {
	if cfg.UsesMemory() {
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.New(), nil
	}

	storage, err := sqlite.Open(ctx, cfg.SQLiteDSN)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if err := storage.Migrate(ctx); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return storage, nil
}

func seedFor(cfg config.Config, today time.Time) application.Seed {
	if cfg.SeedDemoData {
		return application.DemoSeed(today)
	}
	return application.EmptySeed()
}

func storageKind(cfg config.Config) string {
	if cfg.UsesMemory() {
		return "memory"
	}
	return "sqlite"
}

func newHandler(store *application.Store, now func() time.Time, logger *slog.Logger) http.Handler {
	return httptransport.NewRouter(httptransport.RouterConfig{
		Catalog:   httptransport.NewCatalogHandler(store, logger),
		Session:   httptransport.NewSessionHandler(store, logger),
		Servants:  httptransport.NewServantHandler(store, logger),
		Users:     httptransport.NewUserHandler(store, logger),
		Events:    httptransport.NewEventHandler(store, logger),
		Schedules: httptransport.NewScheduleHandler(store, logger),
		Reports:   httptransport.NewReportHandler(store, now, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.Recoverer(logger),
		},
	})
}
