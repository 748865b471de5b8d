// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// State is the engine lifecycle state.
type State int32

const (
	// StateUninitialized means no generation has been built yet.
	StateUninitialized State = iota
	// StateBuilding means the first generation is under construction.
	StateBuilding
	// StateReady means a generation is published and serving.
	StateReady
	// StateRebuilding means a replacement generation is under
	// construction while the previous one keeps serving.
	StateRebuilding
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBuilding:
		return "building"
	case StateReady:
		return "ready"
	case StateRebuilding:
		return "rebuilding"
	default:
		return "unknown"
	}
}

// generation is one immutable snapshot of indexed catalog state. It is
// built off the serving path and published with a single pointer swap.
type generation struct {
	version   int
	builtAt   time.Time
	itemCount int
	content   *ContentSimilarityEngine
	fallback  *FallbackRanker
}

// Engine owns the consistent snapshot served to callers and orchestrates
// initialization, rebuild, and the public recommendation modes. It is
// safe for concurrent use: recommendation reads are lock-free over the
// current generation and the ledger.
type Engine struct {
	cfg    *Config
	ledger *InteractionLedger
	collab *CollaborativeEngine

	gen     atomic.Pointer[generation]
	state   atomic.Int32
	buildMu sync.Mutex // serializes Initialize
}

// NewEngine creates an engine in the Uninitialized state.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ledger := NewInteractionLedger()
	return &Engine{
		cfg:    cfg,
		ledger: ledger,
		collab: NewCollaborativeEngine(ledger, cfg.Collaborative),
	}, nil
}

// Initialize builds a new generation from the catalog and publishes it
// atomically; in-flight reads observe either the old or the new
// generation, never a mix. The interaction ledger is untouched. Safe to
// call repeatedly; concurrent calls are serialized. The build runs to
// completion once started; ctx is only consulted before work begins.
func (e *Engine) Initialize(ctx context.Context, catalog []CatalogItem) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	prev := e.gen.Load()
	if prev == nil {
		e.state.Store(int32(StateBuilding))
	} else {
		e.state.Store(int32(StateRebuilding))
	}

	vectors, err := NewFeatureIndexer().Index(catalog)
	if err != nil {
		// Keep serving the previous generation, if any.
		if prev == nil {
			e.state.Store(int32(StateUninitialized))
		} else {
			e.state.Store(int32(StateReady))
		}
		return err
	}

	version := 1
	if prev != nil {
		version = prev.version + 1
	}

	next := &generation{
		version:   version,
		builtAt:   time.Now(),
		itemCount: len(vectors),
		content:   NewContentSimilarityEngine(vectors, e.cfg.Content),
		fallback:  NewFallbackRanker(catalog),
	}

	e.gen.Store(next)
	e.state.Store(int32(StateReady))
	return nil
}

// RecordInteraction records one weighted event in the ledger. The rating
// is accepted for the supplier contract but does not alter the fixed
// weight table. Invalid types are rejected before any mutation; the
// engine must have served at least one generation.
func (e *Engine) RecordInteraction(userID, itemID string, typ InteractionType, rating float64) error {
	_ = rating

	if e.gen.Load() == nil {
		return ErrNotReady
	}
	return e.ledger.Record(userID, itemID, typ)
}

// Recommend returns a ranked list for the user in the given mode.
// Insufficient personalized signal degrades to the fallback ranking,
// tagged MethodFallback so callers can tell personalized from generic
// results. Only an engine with no generation at all fails, with
// ErrNotReady.
func (e *Engine) Recommend(ctx context.Context, userID string, mode Mode, limit int) ([]Recommendation, error) {
	gen := e.gen.Load()
	if gen == nil {
		return nil, ErrNotReady
	}
	limit = e.clampLimit(limit)

	switch mode {
	case ModeContent:
		recs, err := e.contentForUser(gen, userID, limit)
		if err != nil {
			return gen.fallback.Fallback(limit), nil
		}
		return recs, nil

	case ModeCollaborative:
		recs, err := e.collab.RecommendForUser(userID, limit)
		if err != nil {
			return gen.fallback.Fallback(limit), nil
		}
		return recs, nil

	case ModeHybrid:
		return e.hybridForUser(ctx, gen, userID, limit), nil

	default:
		return nil, fmt.Errorf("unknown recommendation mode %d", mode)
	}
}

// RecommendSimilarTo returns item-to-item content recommendations for an
// anchor item; no user is required. An unknown anchor is an explicit
// error since no sensible fallback target exists.
func (e *Engine) RecommendSimilarTo(_ context.Context, itemID string, limit int) ([]Recommendation, error) {
	gen := e.gen.Load()
	if gen == nil {
		return nil, ErrNotReady
	}
	return gen.content.RankSimilarTo(itemID, nil, e.clampLimit(limit))
}

// Fallback returns the explicit popularity ranking, usable for anonymous
// or cold-start callers.
func (e *Engine) Fallback(limit int) ([]Recommendation, error) {
	gen := e.gen.Load()
	if gen == nil {
		return nil, ErrNotReady
	}
	return gen.fallback.Fallback(e.clampLimit(limit)), nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Version returns the published generation version, 0 when none exists.
func (e *Engine) Version() int {
	if gen := e.gen.Load(); gen != nil {
		return gen.version
	}
	return 0
}

// ItemCount returns the indexed item count of the published generation.
func (e *Engine) ItemCount() int {
	if gen := e.gen.Load(); gen != nil {
		return gen.itemCount
	}
	return 0
}

// BuiltAt returns when the published generation was built.
func (e *Engine) BuiltAt() time.Time {
	if gen := e.gen.Load(); gen != nil {
		return gen.builtAt
	}
	return time.Time{}
}

// contentForUser anchors content recommendations on the user's
// highest-weight item (ties broken by ascending item id) and excludes
// everything the user has already interacted with. No usable anchor
// yields errInsufficientSignal.
func (e *Engine) contentForUser(gen *generation, userID string, limit int) ([]Recommendation, error) {
	vector := e.ledger.VectorFor(userID)
	if len(vector) == 0 {
		return nil, errInsufficientSignal
	}

	anchor := ""
	best := 0.0
	for itemID, w := range vector {
		if !gen.content.Contains(itemID) {
			continue
		}
		if anchor == "" || w > best || (w == best && itemID < anchor) {
			anchor = itemID
			best = w
		}
	}
	if anchor == "" {
		return nil, errInsufficientSignal
	}

	exclude := make(map[string]struct{}, len(vector))
	for itemID := range vector {
		exclude[itemID] = struct{}{}
	}
	return gen.content.RankSimilarTo(anchor, exclude, limit)
}

// hybridForUser dispatches the content and collaborative computations
// concurrently and joins them before blending. Neither goroutine touches
// shared mutable state, so the join needs no synchronization beyond the
// WaitGroup. Both lists empty means no personalized signal at all and the
// fallback ranking is returned instead.
func (e *Engine) hybridForUser(_ context.Context, gen *generation, userID string, limit int) []Recommendation {
	var (
		wg          sync.WaitGroup
		contentRecs []Recommendation
		collabRecs  []Recommendation
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		contentRecs, _ = e.contentForUser(gen, userID, limit)
	}()
	go func() {
		defer wg.Done()
		collabRecs, _ = e.collab.RecommendForUser(userID, limit)
	}()
	wg.Wait()

	if len(contentRecs) == 0 && len(collabRecs) == 0 {
		return gen.fallback.Fallback(limit)
	}
	return blendRecommendations(contentRecs, collabRecs, e.cfg.Blend, limit)
}

// SimilarUsers exposes neighbor lookup for diagnostic surfaces.
func (e *Engine) SimilarUsers(userID string, limit int) ([]UserSimilarity, error) {
	return e.collab.SimilarUsers(userID, e.clampLimit(limit))
}

// clampLimit applies the configured default and maximum result sizes.
func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.Limits.DefaultLimit
	}
	if limit > e.cfg.Limits.MaxLimit {
		return e.cfg.Limits.MaxLimit
	}
	return limit
}
