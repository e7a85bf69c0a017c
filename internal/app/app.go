package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/acrodocs/acrodocs-backend/internal/adapter/postgres"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/postgres/learned"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/postgres/webcache"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/duckduckgo"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/glossarypack"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/webclient"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/wikidata"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/wikipedia"
	"github.com/acrodocs/acrodocs-backend/internal/adapter/provider/wiktionary"
	"github.com/acrodocs/acrodocs-backend/internal/config"
	"github.com/acrodocs/acrodocs-backend/internal/lookup"
	"github.com/acrodocs/acrodocs-backend/internal/service/extraction"
)

// Run is the application entry point. It loads configuration, connects to
// the database, runs migrations, assembles the lookup and extraction
// services, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	learnedRepo := learned.New(pool)
	cacheRepo := webcache.New(pool)

	client := webclient.New(cfg.Lookup.Timeout, cfg.Lookup.UserAgent, logger)
	wiki := wikipedia.NewProvider(client, logger)
	packs, err := glossarypack.NewProvider(logger)
	if err != nil {
		return fmt.Errorf("load glossary packs: %w", err)
	}

	// Source order is the lookup priority order.
	sources := []lookup.Source{
		wikipedia.NewTitleSearch(wiki),
		wikipedia.NewSummary(wiki),
		wikipedia.NewOpenSearch(wiki),
		wiktionary.NewProvider(client, logger),
		wikidata.NewProvider(client, logger),
		packs,
		duckduckgo.NewProvider(client, logger),
	}

	lookupSvc := lookup.New(cacheRepo, sources, logger)
	extractionSvc := extraction.NewService(logger, learnedRepo, lookupSvc, cfg.Extraction)

	handler, stop := newRouter(cfg, pool, extractionSvc, logger)
	defer stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
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

	return nil
}
