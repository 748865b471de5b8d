// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstream/recsys/internal/metrics"
	"github.com/shopstream/recsys/internal/recommend"
)

// CatalogSource loads the persisted catalog. *store.Store satisfies it.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]recommend.CatalogItem, error)
}

// RebuildEngine is the slice of the engine the rebuild loop drives.
type RebuildEngine interface {
	Initialize(ctx context.Context, items []recommend.CatalogItem) error
	Version() int
	ItemCount() int
}

// RebuildServiceConfig holds configuration for the rebuild loop.
type RebuildServiceConfig struct {
	// Interval is how often the catalog is reloaded and the index
	// rebuilt. Defaults to 15 minutes.
	Interval time.Duration

	// RebuildTimeout bounds a single rebuild. Defaults to 5 minutes.
	RebuildTimeout time.Duration
}

// RebuildService periodically reloads the catalog from the store and
// swaps in a fresh index generation. Readers keep serving the previous
// generation while a rebuild runs, and a failed rebuild leaves the
// serving generation untouched.
type RebuildService struct {
	engine RebuildEngine
	source CatalogSource
	config RebuildServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRebuildService creates a new rebuild loop.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRebuildService(engine RebuildEngine, source CatalogSource, cfg RebuildServiceConfig, logger zerolog.Logger) *RebuildService {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.RebuildTimeout <= 0 {
		cfg.RebuildTimeout = 5 * time.Minute
	}
	return &RebuildService{
		engine: engine,
		source: source,
		config: cfg,
		logger: logger.With().Str("service", "rebuild").Logger(),
		name:   "rebuild-service",
	}
}

// Serve implements suture.Service.
func (s *RebuildService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Msg("rebuild service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rebuild service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.rebuild(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled rebuild failed")
			}
		}
	}
}

// rebuild performs one reload-and-reindex cycle.
func (s *RebuildService) rebuild(ctx context.Context) error {
	rebuildCtx, cancel := context.WithTimeout(ctx, s.config.RebuildTimeout)
	defer cancel()

	items, err := s.source.LoadCatalog(rebuildCtx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		// Nothing persisted yet; keep whatever generation is serving.
		s.logger.Debug().Msg("no persisted catalog, skipping rebuild")
		return nil
	}

	start := time.Now()
	err = s.engine.Initialize(rebuildCtx, items)
	metrics.RecordRebuild(time.Since(start), s.engine.Version(), s.engine.ItemCount(), err)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyCatalog) {
			return nil
		}
		return err
	}

	s.logger.Info().
		Int("items", s.engine.ItemCount()).
		Int("version", s.engine.Version()).
		Dur("duration", time.Since(start)).
		Msg("index rebuilt")
	return nil
}

// String returns the service name for supervisor logs.
func (s *RebuildService) String() string {
	return s.name
}
