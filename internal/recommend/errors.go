// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import "errors"

var (
	// ErrEmptyCatalog indicates Initialize was called with zero items.
	// The previous generation, if any, keeps serving.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrUnknownItem indicates a referenced item id is absent from the
	// current generation's index.
	ErrUnknownItem = errors.New("unknown item")

	// ErrUnknownUser indicates a referenced user id has no recorded
	// interactions.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidInteractionType indicates an interaction type outside the
	// fixed four-value set. The ledger is left unchanged.
	ErrInvalidInteractionType = errors.New("invalid interaction type")

	// ErrNotReady indicates a recommendation was requested before any
	// generation has been built, so not even a fallback list exists.
	ErrNotReady = errors.New("engine not ready")
)

// errInsufficientSignal is the internal degradation signal: a strategy
// cannot produce a personalized result and the caller should consult the
// fallback ranker. It never escapes the engine's public surface.
var errInsufficientSignal = errors.New("insufficient signal")
