// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"errors"
	"math"
	"testing"
)

func newContentEngine(t *testing.T, catalog []CatalogItem) *ContentSimilarityEngine {
	t.Helper()
	vectors, err := NewFeatureIndexer().Index(catalog)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	return NewContentSimilarityEngine(vectors, DefaultConfig().Content)
}

func testCatalog() []CatalogItem {
	return []CatalogItem{
		{
			ID: "1", Name: "Wireless Optical Mouse",
			Description: "ergonomic wireless mouse with optical sensor",
			Category:    "electronics", Subcategory: "peripherals",
			Price: 29.99, Rating: 4.5, ViewCount: 1200,
		},
		{
			ID: "2", Name: "Wireless Gaming Mouse",
			Description: "high precision wireless mouse for gaming",
			Category:    "electronics", Subcategory: "peripherals",
			Price: 49.99, Rating: 4.7, ViewCount: 900, Featured: true,
		},
		{
			ID: "3", Name: "Mystery Novel Collection",
			Description: "a boxed set of classic detective fiction",
			Category:    "books", Subcategory: "fiction",
			Price: 24.99, Rating: 4.2, ViewCount: 300,
		},
	}
}

func TestContentSimilarity_SelfIsOne(t *testing.T) {
	engine := newContentEngine(t, testCatalog())

	for _, id := range []string{"1", "2", "3"} {
		got, err := engine.Similarity(id, id)
		if err != nil {
			t.Fatalf("Similarity(%s, %s) error = %v", id, id, err)
		}
		if math.Abs(got-1) > 1e-9 {
			t.Errorf("Similarity(%s, %s) = %f, want 1", id, id, got)
		}
	}
}

func TestContentSimilarity_Symmetric(t *testing.T) {
	engine := newContentEngine(t, testCatalog())

	pairs := [][2]string{{"1", "2"}, {"1", "3"}, {"2", "3"}}
	for _, p := range pairs {
		ab, err := engine.Similarity(p[0], p[1])
		if err != nil {
			t.Fatalf("Similarity(%s, %s) error = %v", p[0], p[1], err)
		}
		ba, err := engine.Similarity(p[1], p[0])
		if err != nil {
			t.Fatalf("Similarity(%s, %s) error = %v", p[1], p[0], err)
		}
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Similarity(%s, %s) = %f but Similarity(%s, %s) = %f", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestContentSimilarity_Bounded(t *testing.T) {
	engine := newContentEngine(t, testCatalog())

	for _, a := range []string{"1", "2", "3"} {
		for _, b := range []string{"1", "2", "3"} {
			got, err := engine.Similarity(a, b)
			if err != nil {
				t.Fatalf("Similarity(%s, %s) error = %v", a, b, err)
			}
			if got < 0 || got > 1 {
				t.Errorf("Similarity(%s, %s) = %f, want within [0, 1]", a, b, got)
			}
		}
	}
}

func TestContentSimilarity_SameCategoryScoresHigher(t *testing.T) {
	engine := newContentEngine(t, testCatalog())

	sameCat, err := engine.Similarity("1", "2")
	if err != nil {
		t.Fatalf("Similarity(1, 2) error = %v", err)
	}
	crossCat, err := engine.Similarity("1", "3")
	if err != nil {
		t.Fatalf("Similarity(1, 3) error = %v", err)
	}

	if sameCat <= crossCat {
		t.Errorf("same-category similarity %f should exceed cross-category %f", sameCat, crossCat)
	}
}

func TestContentSimilarity_UnknownItem(t *testing.T) {
	engine := newContentEngine(t, testCatalog())

	if _, err := engine.Similarity("1", "nope"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Similarity with unknown item error = %v, want ErrUnknownItem", err)
	}
	if _, err := engine.Similarity("nope", "1"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("Similarity with unknown anchor error = %v, want ErrUnknownItem", err)
	}
}

func TestContentSimilarity_SubcategoryRequiresCategoryMatch(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "a", Category: "electronics", Subcategory: "audio"},
		{ID: "b", Category: "automotive", Subcategory: "audio"},
		{ID: "c", Category: "automotive", Subcategory: "tools"},
	}
	engine := newContentEngine(t, catalog)

	// a and b share only the subcategory; it must not count.
	crossCat, err := engine.Similarity("a", "b")
	if err != nil {
		t.Fatalf("Similarity(a, b) error = %v", err)
	}
	sameCatOnly, err := engine.Similarity("b", "c")
	if err != nil {
		t.Fatalf("Similarity(b, c) error = %v", err)
	}
	if crossCat >= sameCatOnly {
		t.Errorf("subcategory matched across categories: cross = %f, same-category = %f", crossCat, sameCatOnly)
	}
}

func TestRankSimilarTo(t *testing.T) {
	engine := newContentEngine(t, testCatalog())

	tests := []struct {
		name    string
		anchor  string
		exclude map[string]struct{}
		limit   int
		want    []string
		wantErr error
	}{
		{
			name:   "peer in same category ranks first",
			anchor: "1",
			limit:  10,
			want:   []string{"2", "3"},
		},
		{
			name:   "limit truncates",
			anchor: "1",
			limit:  1,
			want:   []string{"2"},
		},
		{
			name:    "excluded items are skipped",
			anchor:  "1",
			exclude: map[string]struct{}{"2": {}},
			limit:   10,
			want:    []string{"3"},
		},
		{
			name:    "unknown anchor",
			anchor:  "nope",
			limit:   10,
			wantErr: ErrUnknownItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := engine.RankSimilarTo(tt.anchor, tt.exclude, tt.limit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RankSimilarTo() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(recs) != len(tt.want) {
				t.Fatalf("RankSimilarTo() returned %d items, want %d", len(recs), len(tt.want))
			}
			for i, rec := range recs {
				if rec.ItemID != tt.want[i] {
					t.Errorf("RankSimilarTo()[%d] = %s, want %s", i, rec.ItemID, tt.want[i])
				}
				if rec.Method != MethodContent {
					t.Errorf("RankSimilarTo()[%d].Method = %v, want content", i, rec.Method)
				}
			}
		})
	}
}

func TestRankSimilarTo_NeverReturnsAnchor(t *testing.T) {
	engine := newContentEngine(t, testCatalog())

	recs, err := engine.RankSimilarTo("2", nil, 100)
	if err != nil {
		t.Fatalf("RankSimilarTo() error = %v", err)
	}
	for _, rec := range recs {
		if rec.ItemID == "2" {
			t.Error("RankSimilarTo() returned the anchor item")
		}
	}
}

func TestPriceCloseness(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"equal prices", 10, 10, 1},
		{"both zero", 0, 0, 1},
		{"half price", 5, 10, 0.5},
		{"one free", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priceCloseness(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("priceCloseness(%f, %f) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatingCloseness(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"equal ratings", 4.5, 4.5, 1},
		{"one star apart", 3, 4, 0.8},
		{"full scale apart", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ratingCloseness(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ratingCloseness(%f, %f) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
