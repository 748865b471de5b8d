// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"math"
	"testing"
)

func TestFallbackRanker_Order(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "low-rated", Rating: 2.0, ViewCount: 9999},
		{ID: "top-rated", Rating: 4.8, ViewCount: 10},
		{ID: "popular", Rating: 4.5, ViewCount: 500},
		{ID: "less-popular", Rating: 4.5, ViewCount: 100, Featured: true},
		{ID: "featured-tie", Rating: 4.5, ViewCount: 100, Featured: true},
		{ID: "plain-tie", Rating: 4.5, ViewCount: 100},
	}

	ranker := NewFallbackRanker(catalog)
	recs := ranker.Fallback(10)

	want := []string{"top-rated", "popular", "featured-tie", "less-popular", "plain-tie", "low-rated"}
	if len(recs) != len(want) {
		t.Fatalf("Fallback() returned %d items, want %d", len(recs), len(want))
	}
	for i, rec := range recs {
		if rec.ItemID != want[i] {
			t.Errorf("Fallback()[%d] = %s, want %s", i, rec.ItemID, want[i])
		}
		if rec.Method != MethodFallback {
			t.Errorf("Fallback()[%d].Method = %v, want fallback", i, rec.Method)
		}
	}
}

func TestFallbackRanker_ScoreIsNormalizedRating(t *testing.T) {
	ranker := NewFallbackRanker([]CatalogItem{{ID: "a", Rating: 4.0}})

	recs := ranker.Fallback(1)
	if len(recs) != 1 {
		t.Fatalf("Fallback() returned %d items, want 1", len(recs))
	}
	if math.Abs(recs[0].Score-0.8) > 1e-9 {
		t.Errorf("score = %f, want 0.8", recs[0].Score)
	}
}

func TestFallbackRanker_Limit(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "a", Rating: 5}, {ID: "b", Rating: 4}, {ID: "c", Rating: 3},
	}
	ranker := NewFallbackRanker(catalog)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"limit within range", 2, 2},
		{"limit beyond catalog", 99, 3},
		{"zero limit", 0, 0},
		{"negative limit", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ranker.Fallback(tt.limit); len(got) != tt.want {
				t.Errorf("Fallback(%d) returned %d items, want %d", tt.limit, len(got), tt.want)
			}
		})
	}
}

func TestFallbackRanker_EmptyCatalog(t *testing.T) {
	ranker := NewFallbackRanker(nil)

	if got := ranker.Fallback(10); len(got) != 0 {
		t.Errorf("Fallback() over empty catalog = %v, want empty", got)
	}
}

func TestFallbackRanker_DoesNotMutateInput(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "b", Rating: 3}, {ID: "a", Rating: 5},
	}
	NewFallbackRanker(catalog)

	if catalog[0].ID != "b" || catalog[1].ID != "a" {
		t.Errorf("input catalog reordered: %v", catalog)
	}
}
