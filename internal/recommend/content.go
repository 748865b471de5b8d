// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"math"
	"sort"
)

// ContentSimilarityEngine computes pairwise item similarity over one
// generation's feature vectors. It is immutable after construction and
// safe for unsynchronized concurrent reads.
type ContentSimilarityEngine struct {
	weights ContentWeights
	vectors []FeatureVector
	index   map[string]int // item id -> position in vectors
}

// NewContentSimilarityEngine builds a similarity engine over the given
// feature vectors.
func NewContentSimilarityEngine(vectors []FeatureVector, weights ContentWeights) *ContentSimilarityEngine {
	index := make(map[string]int, len(vectors))
	for i := range vectors {
		index[vectors[i].ItemID] = i
	}
	return &ContentSimilarityEngine{
		weights: weights,
		vectors: vectors,
		index:   index,
	}
}

// Similarity returns the weighted content similarity of two items in
// [0, 1]. Unknown ids return ErrUnknownItem.
func (c *ContentSimilarityEngine) Similarity(itemA, itemB string) (float64, error) {
	ia, ok := c.index[itemA]
	if !ok {
		return 0, ErrUnknownItem
	}
	ib, ok := c.index[itemB]
	if !ok {
		return 0, ErrUnknownItem
	}
	return c.similarity(&c.vectors[ia], &c.vectors[ib]), nil
}

// similarity is the fixed five-term weighted sum, each term normalized to
// [0, 1] before weighting, with the total clamped to [0, 1].
func (c *ContentSimilarityEngine) similarity(a, b *FeatureVector) float64 {
	score := c.weights.Text * textCosine(a, b)

	if a.Category == b.Category {
		score += c.weights.Category

		// Subcategory equality only counts once the category matched.
		if a.Subcategory == b.Subcategory {
			score += c.weights.Subcategory
		}
	}

	score += c.weights.Price * priceCloseness(a.Price, b.Price)
	score += c.weights.Rating * ratingCloseness(a.Rating, b.Rating)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// priceCloseness maps a price pair to [0, 1]; both zero counts as
// identical pricing.
func priceCloseness(a, b float64) float64 {
	maxPrice := math.Max(a, b)
	if maxPrice == 0 {
		return 1
	}
	v := 1 - math.Abs(a-b)/maxPrice
	if v < 0 {
		return 0
	}
	return v
}

// ratingCloseness maps a rating pair on the 0-5 scale to [0, 1].
func ratingCloseness(a, b float64) float64 {
	v := 1 - math.Abs(a-b)/5
	if v < 0 {
		return 0
	}
	return v
}

// RankSimilarTo scores every indexed item against the anchor, excluding
// the anchor itself and the ids in exclude, and returns the top limit by
// descending score with ties broken by ascending item id. An anchor
// absent from the index returns ErrUnknownItem.
func (c *ContentSimilarityEngine) RankSimilarTo(anchorID string, exclude map[string]struct{}, limit int) ([]Recommendation, error) {
	ia, ok := c.index[anchorID]
	if !ok {
		return nil, ErrUnknownItem
	}
	anchor := &c.vectors[ia]

	recs := make([]Recommendation, 0, len(c.vectors))
	for i := range c.vectors {
		v := &c.vectors[i]
		if v.ItemID == anchorID {
			continue
		}
		if _, skip := exclude[v.ItemID]; skip {
			continue
		}
		recs = append(recs, Recommendation{
			ItemID: v.ItemID,
			Score:  c.similarity(anchor, v),
			Method: MethodContent,
		})
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Contains reports whether the item id is indexed in this generation.
func (c *ContentSimilarityEngine) Contains(itemID string) bool {
	_, ok := c.index[itemID]
	return ok
}

// sortRecommendations orders by descending score, ties by ascending
// item id for determinism.
func sortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].ItemID < recs[j].ItemID
	})
}
