// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

// Package metrics provides Prometheus instrumentation for the
// recommendation service: API latency and throughput, engine rebuild
// timing, interaction ingestion, and DuckDB query performance.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recsys_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recsys_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Recommendation metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_recommendations_served_total",
			Help: "Total recommendation responses served",
		},
		[]string{"mode", "method"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recsys_recommendation_duration_seconds",
			Help:    "Recommendation computation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"mode"},
	)

	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_interactions_recorded_total",
			Help: "Total interaction events recorded",
		},
		[]string{"type"},
	)

	InteractionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recsys_interactions_rejected_total",
			Help: "Total interaction events rejected as invalid",
		},
	)

	// Engine metrics
	EngineRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recsys_engine_rebuild_duration_seconds",
			Help:    "Duration of catalog index rebuilds in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	EngineRebuildErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recsys_engine_rebuild_errors_total",
			Help: "Total failed catalog index rebuilds",
		},
	)

	EngineGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recsys_engine_generation",
			Help: "Version of the currently serving engine generation",
		},
	)

	EngineIndexedItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recsys_engine_indexed_items",
			Help: "Item count of the currently serving generation",
		},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recsys_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recsys_duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRecommendation records one served recommendation response.
// mode is what the caller asked for, method what actually produced the
// results; they differ when the engine degrades to the fallback ranking.
func RecordRecommendation(mode, method string, duration time.Duration) {
	RecommendationsServed.WithLabelValues(mode, method).Inc()
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordInteraction records one accepted interaction event.
func RecordInteraction(interactionType string) {
	InteractionsRecorded.WithLabelValues(interactionType).Inc()
}

// RecordRebuild records one catalog rebuild attempt.
func RecordRebuild(duration time.Duration, version, itemCount int, err error) {
	if err != nil {
		EngineRebuildErrors.Inc()
		return
	}
	EngineRebuildDuration.Observe(duration.Seconds())
	EngineGeneration.Set(float64(version))
	EngineIndexedItems.Set(float64(itemCount))
}

// RecordDBQuery records one database query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
