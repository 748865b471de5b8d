// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopstream/recsys/internal/config"
)

// Router builds the HTTP handler tree for the service.
type Router struct {
	handler *Handler
	cfg     config.ServerConfig
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, cfg config.ServerConfig) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup configures all routes and returns the root handler.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())

	// Health and operational endpoints, outside the rate limit.
	r.Get("/healthz", rt.handler.HealthLive)
	r.Get("/readyz", rt.handler.HealthReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if rt.cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(rt.cfg.RateLimitReqs, rt.cfg.RateLimitWindow))
		}
		r.Use(PrometheusMetrics())

		r.Put("/catalog", rt.handler.ReplaceCatalog)
		r.Post("/interactions", rt.handler.RecordInteraction)
		r.Get("/status", rt.handler.Status)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/user/{userID}", rt.handler.UserRecommendations)
			r.Get("/similar/{itemID}", rt.handler.SimilarItems)
			r.Get("/popular", rt.handler.PopularItems)
		})
	})

	return r
}
