// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

// Package api provides the HTTP surface of the recommendation service:
// catalog ingestion, interaction recording, and the recommendation
// endpoints, routed with chi.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/shopstream/recsys/internal/cache"
	"github.com/shopstream/recsys/internal/logging"
	"github.com/shopstream/recsys/internal/metrics"
	"github.com/shopstream/recsys/internal/recommend"
	"github.com/shopstream/recsys/internal/validation"
)

// Store is the subset of the persistence layer the handlers need.
// *store.Store satisfies it; tests substitute lighter fakes.
type Store interface {
	ReplaceCatalog(ctx context.Context, items []recommend.CatalogItem) error
	AppendInteraction(ctx context.Context, ev recommend.InteractionEvent) error
	InteractionCount(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// Handler serves the HTTP API over the engine and the store.
type Handler struct {
	engine       *recommend.Engine
	store        Store
	popularCache *cache.Cache
}

// NewHandler creates a Handler.
func NewHandler(engine *recommend.Engine, store Store) *Handler {
	return &Handler{
		engine:       engine,
		store:        store,
		popularCache: cache.New(time.Minute),
	}
}

// catalogItemPayload is one item in a catalog replacement request.
type catalogItemPayload struct {
	ID           string  `json:"id" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Manufacturer string  `json:"manufacturer"`
	Category     string  `json:"category"`
	Subcategory  string  `json:"subcategory"`
	Price        float64 `json:"price" validate:"gte=0"`
	Rating       float64 `json:"rating" validate:"gte=0,lte=5"`
	ViewCount    int64   `json:"view_count" validate:"gte=0"`
	Featured     bool    `json:"featured"`
	OnSale       bool    `json:"on_sale"`
}

// catalogRequest is the PUT /catalog payload.
type catalogRequest struct {
	Items []catalogItemPayload `json:"items" validate:"required,min=1,dive"`
}

// ReplaceCatalog handles PUT /api/v1/catalog: persists the new catalog
// and rebuilds the engine index. Requests keep being served from the
// previous generation while the rebuild runs.
func (h *Handler) ReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	items := make([]recommend.CatalogItem, len(req.Items))
	for i, p := range req.Items {
		items[i] = recommend.CatalogItem{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Manufacturer: p.Manufacturer,
			Category:     p.Category,
			Subcategory:  p.Subcategory,
			Price:        p.Price,
			Rating:       p.Rating,
			ViewCount:    p.ViewCount,
			Featured:     p.Featured,
			OnSale:       p.OnSale,
		}
	}

	if err := h.store.ReplaceCatalog(r.Context(), items); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError, "failed to persist catalog", err)
		return
	}

	rebuildStart := time.Now()
	err := h.engine.Initialize(r.Context(), items)
	metrics.RecordRebuild(time.Since(rebuildStart), h.engine.Version(), h.engine.ItemCount(), err)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyCatalog) {
			respondError(w, http.StatusBadRequest, codeEmptyCatalog, "catalog must contain at least one item", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError, "failed to rebuild index", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("items", len(items)).
		Int("version", h.engine.Version()).
		Msg("catalog replaced")

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"version":    h.engine.Version(),
		"item_count": h.engine.ItemCount(),
	}, start)
}

// interactionRequest is the POST /interactions payload.
type interactionRequest struct {
	UserID string  `json:"user_id" validate:"required"`
	ItemID string  `json:"item_id" validate:"required"`
	Type   string  `json:"type" validate:"required"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

// RecordInteraction handles POST /api/v1/interactions. Unknown
// interaction types are rejected with 400 and leave no trace in either
// the ledger or the event log.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	typ, err := recommend.ParseInteractionType(req.Type)
	if err != nil {
		metrics.InteractionsRejected.Inc()
		respondError(w, http.StatusBadRequest, codeInvalidInteractionType,
			"type must be one of: view, like, cart_add, purchase", nil)
		return
	}

	if err := h.engine.RecordInteraction(req.UserID, req.ItemID, typ, req.Rating); err != nil {
		if errors.Is(err, recommend.ErrNotReady) {
			respondError(w, http.StatusServiceUnavailable, codeEngineNotReady, "no catalog has been loaded", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError, "failed to record interaction", err)
		return
	}

	ev := recommend.InteractionEvent{
		UserID:    req.UserID,
		ItemID:    req.ItemID,
		Type:      typ,
		Rating:    req.Rating,
		Timestamp: time.Now().UTC(),
	}
	if err := h.store.AppendInteraction(r.Context(), ev); err != nil {
		// The in-memory ledger already has the event; losing the durable
		// copy is logged but does not fail the request.
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to persist interaction")
	}

	metrics.RecordInteraction(typ.String())
	respondSuccess(w, http.StatusAccepted, map[string]interface{}{
		"user_id": req.UserID,
		"item_id": req.ItemID,
		"type":    typ.String(),
	}, start)
}

// recommendationPayload is one entry of a recommendation response.
type recommendationPayload struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
	Method string  `json:"method"`
}

func toPayload(recs []recommend.Recommendation) []recommendationPayload {
	out := make([]recommendationPayload, len(recs))
	for i, rec := range recs {
		out[i] = recommendationPayload{
			ItemID: rec.ItemID,
			Score:  rec.Score,
			Method: rec.Method.String(),
		}
	}
	return out
}

// UserRecommendations handles
// GET /api/v1/recommendations/user/{userID}?mode=&limit=.
// The mode defaults to hybrid.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userID")
	limit := queryInt(r, "limit", 0)

	modeParam := r.URL.Query().Get("mode")
	mode := recommend.ModeHybrid
	if modeParam != "" {
		var ok bool
		mode, ok = recommend.ParseMode(modeParam)
		if !ok {
			respondError(w, http.StatusBadRequest, codeInvalidMode,
				"mode must be one of: content, collaborative, hybrid", nil)
			return
		}
	}

	recs, err := h.engine.Recommend(r.Context(), userID, mode, limit)
	if err != nil {
		if errors.Is(err, recommend.ErrNotReady) {
			respondError(w, http.StatusServiceUnavailable, codeEngineNotReady, "no catalog has been loaded", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError, "recommendation failed", err)
		return
	}

	method := "fallback"
	if len(recs) > 0 {
		method = recs[0].Method.String()
	}
	metrics.RecordRecommendation(mode.String(), method, time.Since(start))

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"user_id":         userID,
		"mode":            mode.String(),
		"recommendations": toPayload(recs),
	}, start)
}

// SimilarItems handles GET /api/v1/recommendations/similar/{itemID}.
func (h *Handler) SimilarItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	itemID := chi.URLParam(r, "itemID")
	limit := queryInt(r, "limit", 0)

	recs, err := h.engine.RecommendSimilarTo(r.Context(), itemID, limit)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrNotReady):
			respondError(w, http.StatusServiceUnavailable, codeEngineNotReady, "no catalog has been loaded", nil)
		case errors.Is(err, recommend.ErrUnknownItem):
			respondError(w, http.StatusNotFound, codeItemNotFound, "item is not in the catalog", nil)
		default:
			respondError(w, http.StatusInternalServerError, codeInternalError, "similarity lookup failed", err)
		}
		return
	}

	metrics.RecordRecommendation("similar", "content", time.Since(start))
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"item_id":         itemID,
		"recommendations": toPayload(recs),
	}, start)
}

// PopularItems handles GET /api/v1/recommendations/popular, the
// non-personalized ranking for anonymous callers. The ranking only
// changes on rebuild, so results are cached per generation.
func (h *Handler) PopularItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := queryInt(r, "limit", 0)

	key := cache.PopularKey(h.engine.Version(), limit)
	recs, ok := h.popularCache.Get(key)
	if !ok {
		var err error
		recs, err = h.engine.Fallback(limit)
		if err != nil {
			if errors.Is(err, recommend.ErrNotReady) {
				respondError(w, http.StatusServiceUnavailable, codeEngineNotReady, "no catalog has been loaded", nil)
				return
			}
			respondError(w, http.StatusInternalServerError, codeInternalError, "popularity lookup failed", err)
			return
		}
		h.popularCache.Set(key, recs)
	}

	metrics.RecordRecommendation("popular", "fallback", time.Since(start))
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"recommendations": toPayload(recs),
	}, start)
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data := map[string]interface{}{
		"state":      h.engine.State().String(),
		"version":    h.engine.Version(),
		"item_count": h.engine.ItemCount(),
	}
	if builtAt := h.engine.BuiltAt(); !builtAt.IsZero() {
		data["built_at"] = builtAt.UTC().Format(time.RFC3339)
	}

	if count, err := h.store.InteractionCount(r.Context()); err == nil {
		data["interaction_count"] = count
	}

	respondSuccess(w, http.StatusOK, data, start)
}

// HealthLive handles GET /healthz: process liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /readyz: the service is ready once the store
// answers and a generation is serving.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.store.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, codeInternalError, "database unreachable", err)
		return
	}
	if h.engine.State() != recommend.StateReady && h.engine.State() != recommend.StateRebuilding {
		respondError(w, http.StatusServiceUnavailable, codeEngineNotReady, "engine has no serving generation", nil)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, start)
}
