// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import "sort"

// FallbackRanker produces the non-personalized popularity ranking used
// whenever personalized signal is insufficient. The order is fixed at
// construction: rating descending, view count descending, featured first,
// then ascending item id. Never fails; an empty catalog yields empty
// results.
type FallbackRanker struct {
	ranked []Recommendation
}

// NewFallbackRanker precomputes the popularity order for one generation's
// catalog.
func NewFallbackRanker(catalog []CatalogItem) *FallbackRanker {
	items := make([]CatalogItem, len(catalog))
	copy(items, catalog)

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		if a.Featured != b.Featured {
			return a.Featured
		}
		return a.ID < b.ID
	})

	ranked := make([]Recommendation, len(items))
	for i, item := range items {
		ranked[i] = Recommendation{
			ItemID: item.ID,
			Score:  item.Rating / 5,
			Method: MethodFallback,
		}
	}
	return &FallbackRanker{ranked: ranked}
}

// Fallback returns the top limit items of the popularity order.
func (f *FallbackRanker) Fallback(limit int) []Recommendation {
	if limit > len(f.ranked) {
		limit = len(f.ranked)
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]Recommendation, limit)
	copy(out, f.ranked[:limit])
	return out
}
