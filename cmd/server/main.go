// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

// Package main is the entry point for the recommendation server.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load via Koanf v2 (defaults, config file,
//     environment variables)
//  2. Logging: zerolog, JSON or console format
//  3. Store: DuckDB for the catalog and the interaction event log
//  4. Engine: index built from the persisted catalog, then the event
//     log replayed into the in-memory ledger
//  5. Supervisor tree: the periodic rebuild loop and the HTTP server
//     under suture supervision
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server stops
// accepting connections and in-flight requests get the configured
// shutdown timeout to finish.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopstream/recsys/internal/api"
	"github.com/shopstream/recsys/internal/config"
	"github.com/shopstream/recsys/internal/logging"
	"github.com/shopstream/recsys/internal/recommend"
	"github.com/shopstream/recsys/internal/store"
	"github.com/shopstream/recsys/internal/supervisor"
	"github.com/shopstream/recsys/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet; the default logger reports this.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("db_path", cfg.Database.Path).
		Bool("rebuild_enabled", cfg.Rebuild.Enabled).
		Msg("starting recsys")

	st, err := store.Open(cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing store")
		}
	}()

	engine, err := recommend.NewEngine(cfg.Recommend)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create engine")
	}

	if err := restoreState(context.Background(), st, engine); err != nil {
		logging.Fatal().Err(err).Msg("failed to restore persisted state")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(api.NewHandler(engine, st), cfg.Server).Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog wants an slog.Logger; bridge it to zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if cfg.Rebuild.Enabled {
		tree.AddEngineService(services.NewRebuildService(engine, st, services.RebuildServiceConfig{
			Interval: cfg.Rebuild.Interval,
		}, logging.Logger()))
		logging.Info().Dur("interval", cfg.Rebuild.Interval).Msg("rebuild service added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("http server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
	}

	logging.Info().Msg("stopped")
}

// restoreState rebuilds the serving generation from the persisted
// catalog and replays the interaction event log into the ledger. A
// store with no catalog yet leaves the engine uninitialized; the API
// answers 503 until one is loaded.
func restoreState(ctx context.Context, st *store.Store, engine *recommend.Engine) error {
	items, err := st.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		logging.Info().Msg("no persisted catalog, waiting for first load")
		return nil
	}

	if err := engine.Initialize(ctx, items); err != nil {
		return err
	}
	logging.Info().
		Int("items", engine.ItemCount()).
		Int("version", engine.Version()).
		Msg("index built from persisted catalog")

	replayed := 0
	err = st.ReplayInteractions(ctx, func(ev recommend.InteractionEvent) error {
		if err := engine.RecordInteraction(ev.UserID, ev.ItemID, ev.Type, ev.Rating); err != nil {
			return err
		}
		replayed++
		return nil
	})
	if err != nil {
		return err
	}
	logging.Info().Int("events", replayed).Msg("interaction log replayed")
	return nil
}
