// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

// Package recommend implements the product recommendation engine.
//
// The engine turns a product catalog and a stream of per-user interaction
// events into ranked personalized product lists using three complementary
// strategies:
//
//   - Content: TF-IDF text similarity plus attribute closeness between items
//   - Collaborative: neighbor preferences from behaviorally similar users
//   - Hybrid: a weighted blend of both
//
// A deterministic popularity fallback covers cold-start cases where no
// personalized signal exists.
//
// # Generations
//
// The catalog index is immutable once built. Initialize constructs a new
// generation (feature vectors, content similarity state, fallback ranking)
// and publishes it with an atomic pointer swap, so recommendation readers
// never observe a partially built index and need no locks. The interaction
// ledger is generation-independent and survives rebuilds.
//
// # Thread safety
//
// All recommendation reads are safe to call in parallel. RecordInteraction
// serializes writes per user; writes for distinct users proceed in parallel.
//
// This package performs no I/O and does not log; catalog and event delivery
// as well as observability are the service layer's concern.
package recommend
