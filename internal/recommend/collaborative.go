// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"math"
	"sort"
)

// CollaborativeEngine recommends items from the preferences of
// behaviorally similar users. Similarity is computed against the ledger
// state at request time; nothing is precomputed or cached.
type CollaborativeEngine struct {
	ledger *InteractionLedger
	cfg    CollaborativeConfig
}

// NewCollaborativeEngine creates a collaborative engine over the ledger.
func NewCollaborativeEngine(ledger *InteractionLedger, cfg CollaborativeConfig) *CollaborativeEngine {
	return &CollaborativeEngine{ledger: ledger, cfg: cfg}
}

// SimilarUsers returns up to limit users most similar to userID, sorted
// by descending similarity with ties broken by ascending user id.
// Neighbors below the configured similarity threshold are excluded as
// noise. A user with no recorded interactions returns ErrUnknownUser.
func (e *CollaborativeEngine) SimilarUsers(userID string, limit int) ([]UserSimilarity, error) {
	target := e.ledger.VectorFor(userID)
	if len(target) == 0 {
		return nil, ErrUnknownUser
	}

	neighbors := make([]UserSimilarity, 0)
	for _, otherID := range e.ledger.AllUsers() {
		if otherID == userID {
			continue
		}
		sim := userCosine(target, e.ledger.VectorFor(otherID))
		if sim < e.cfg.MinSimilarity {
			continue
		}
		neighbors = append(neighbors, UserSimilarity{UserID: otherID, Similarity: sim})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].UserID < neighbors[j].UserID
	})

	if len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors, nil
}

// RecommendForUser aggregates neighbor preferences over items the target
// user has not interacted with:
//
//	score(item) = sum over neighbors of weight(neighbor, item) * sim(neighbor)
//
// ranked descending with ties broken by ascending item id. A target with
// no interactions, or with no neighbor above the similarity threshold,
// yields errInsufficientSignal and the caller must fall back.
func (e *CollaborativeEngine) RecommendForUser(userID string, limit int) ([]Recommendation, error) {
	neighbors, err := e.SimilarUsers(userID, limit)
	if err != nil {
		return nil, errInsufficientSignal
	}
	if len(neighbors) == 0 {
		return nil, errInsufficientSignal
	}

	target := e.ledger.VectorFor(userID)
	aggregate := make(map[string]float64)
	for _, n := range neighbors {
		for itemID, w := range e.ledger.VectorFor(n.UserID) {
			if _, seen := target[itemID]; seen {
				continue
			}
			aggregate[itemID] += w * n.Similarity
		}
	}
	if len(aggregate) == 0 {
		return nil, errInsufficientSignal
	}

	recs := make([]Recommendation, 0, len(aggregate))
	for itemID, score := range aggregate {
		recs = append(recs, Recommendation{
			ItemID: itemID,
			Score:  score,
			Method: MethodCollaborative,
		})
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// userCosine is cosine similarity restricted to the items both users have
// interacted with; both vectors are normalized over the common set only,
// so direction on the shared dimensions is all that matters. An empty
// common set yields 0.
//
// Pure cosine-over-common-items is kept deliberately: down-weighting
// low-overlap pairs (e.g. Jaccard-adjusted cosine) changes neighbor
// selection for sparse ledgers and has not shown a stronger rationale.
func userCosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for item, wa := range a {
		wb, ok := b[item]
		if !ok {
			continue
		}
		dot += wa * wb
		normA += wa * wa
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
