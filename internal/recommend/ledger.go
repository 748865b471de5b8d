// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"sort"
	"sync"
)

// InteractionLedger accumulates weighted per-user, per-item interaction
// scores. It is append-only: a (user, item) score only ever grows by the
// weight of each recorded event. The ledger is generation-independent and
// survives catalog rebuilds.
//
// Reads take a shared lock on the user table; writes for one user are
// serialized by that user's own lock, so writes for distinct users proceed
// in parallel.
type InteractionLedger struct {
	mu    sync.RWMutex
	users map[string]*userVector
}

// userVector holds one user's accumulated item weights.
type userVector struct {
	mu      sync.Mutex
	weights map[string]float64
}

// NewInteractionLedger creates an empty ledger.
func NewInteractionLedger() *InteractionLedger {
	return &InteractionLedger{
		users: make(map[string]*userVector),
	}
}

// Record appends one weighted event, adding the type's weight to the
// user's accumulated score for the item. An invalid type is rejected with
// ErrInvalidInteractionType before any mutation.
func (l *InteractionLedger) Record(userID, itemID string, typ InteractionType) error {
	if !typ.Valid() {
		return ErrInvalidInteractionType
	}

	l.mu.RLock()
	uv := l.users[userID]
	l.mu.RUnlock()

	if uv == nil {
		l.mu.Lock()
		uv = l.users[userID]
		if uv == nil {
			uv = &userVector{weights: make(map[string]float64)}
			l.users[userID] = uv
		}
		l.mu.Unlock()
	}

	uv.mu.Lock()
	uv.weights[itemID] += typ.Weight()
	uv.mu.Unlock()
	return nil
}

// VectorFor returns a snapshot copy of the user's accumulated item
// weights. An unknown user yields an empty map.
func (l *InteractionLedger) VectorFor(userID string) map[string]float64 {
	l.mu.RLock()
	uv := l.users[userID]
	l.mu.RUnlock()

	if uv == nil {
		return map[string]float64{}
	}

	uv.mu.Lock()
	out := make(map[string]float64, len(uv.weights))
	for item, w := range uv.weights {
		out[item] = w
	}
	uv.mu.Unlock()
	return out
}

// HasUser reports whether the user has any recorded interactions.
func (l *InteractionLedger) HasUser(userID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.users[userID] != nil
}

// AllUsers returns every user id with recorded interactions, sorted
// ascending for deterministic iteration.
func (l *InteractionLedger) AllUsers() []string {
	l.mu.RLock()
	ids := make([]string, 0, len(l.users))
	for id := range l.users {
		ids = append(ids, id)
	}
	l.mu.RUnlock()

	sort.Strings(ids)
	return ids
}
