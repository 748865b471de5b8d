// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestFeatureIndexer_Index(t *testing.T) {
	tests := []struct {
		name    string
		catalog []CatalogItem
		wantErr error
		wantLen int
	}{
		{
			name:    "empty catalog returns ErrEmptyCatalog",
			catalog: nil,
			wantErr: ErrEmptyCatalog,
		},
		{
			name: "one vector per item",
			catalog: []CatalogItem{
				{ID: "1", Name: "Wireless Mouse", Category: "electronics"},
				{ID: "2", Name: "Gaming Keyboard", Category: "electronics"},
			},
			wantLen: 2,
		},
		{
			name: "duplicate ids keep first occurrence",
			catalog: []CatalogItem{
				{ID: "1", Name: "Wireless Mouse", Category: "electronics"},
				{ID: "1", Name: "Duplicate Mouse", Category: "electronics"},
			},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vectors, err := NewFeatureIndexer().Index(tt.catalog)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Index() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(vectors) != tt.wantLen {
				t.Errorf("Index() returned %d vectors, want %d", len(vectors), tt.wantLen)
			}
		})
	}
}

func TestFeatureIndexer_CopiesItemFields(t *testing.T) {
	catalog := []CatalogItem{
		{
			ID: "42", Name: "Espresso Machine", Manufacturer: "BrewCo",
			Category: "kitchen", Subcategory: "coffee",
			Price: 249.99, Rating: 4.5, Featured: true, OnSale: true,
		},
	}

	vectors, err := NewFeatureIndexer().Index(catalog)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	v := vectors[0]
	if v.ItemID != "42" || v.Category != "kitchen" || v.Subcategory != "coffee" {
		t.Errorf("categorical fields not copied: %+v", v)
	}
	if v.Price != 249.99 || v.Rating != 4.5 {
		t.Errorf("numeric fields not copied: %+v", v)
	}
	if !v.Featured || !v.OnSale {
		t.Errorf("flags not copied: %+v", v)
	}
	if v.Manufacturer != "BrewCo" {
		t.Errorf("manufacturer not copied: %+v", v)
	}
}

func TestFeatureIndexer_Deterministic(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "1", Name: "Trail Running Shoes", Description: "lightweight shoes for trail running", Category: "sports"},
		{ID: "2", Name: "Road Running Shoes", Description: "cushioned shoes for road running", Category: "sports"},
		{ID: "3", Name: "Cast Iron Skillet", Description: "pre-seasoned cast iron", Category: "kitchen"},
	}

	first, err := NewFeatureIndexer().Index(catalog)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	second, err := NewFeatureIndexer().Index(catalog)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("re-indexing an unchanged catalog produced different vectors")
	}
}

func TestFeatureIndexer_VectorsAreUnitLength(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "1", Name: "Blue Cotton Shirt", Category: "apparel"},
		{ID: "2", Name: "Red Cotton Shirt", Category: "apparel"},
	}

	vectors, err := NewFeatureIndexer().Index(catalog)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	for _, v := range vectors {
		var norm float64
		for _, tw := range v.terms {
			norm += tw.weight * tw.weight
		}
		if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
			t.Errorf("vector %s norm = %f, want 1", v.ItemID, math.Sqrt(norm))
		}
	}
}

func TestTextCosine(t *testing.T) {
	catalog := []CatalogItem{
		{ID: "1", Name: "Wireless Mouse", Category: "electronics"},
		{ID: "2", Name: "Wireless Mouse", Category: "electronics"},
		{ID: "3", Name: "Garden Hose", Category: "outdoors"},
		{ID: "4"},
		{ID: "5"},
	}
	vectors, err := NewFeatureIndexer().Index(catalog)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	byID := make(map[string]*FeatureVector, len(vectors))
	for i := range vectors {
		byID[vectors[i].ItemID] = &vectors[i]
	}

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical text is 1", "1", "2", 1},
		{"self similarity is 1", "1", "1", 1},
		{"disjoint text is 0", "1", "3", 0},
		{"both empty count as identical", "4", "5", 1},
		{"empty against non-empty is 0", "1", "4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textCosine(byID[tt.a], byID[tt.b])
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("textCosine(%s, %s) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"splits on punctuation", "mouse, wireless!", []string{"mouse", "wireless"}},
		{"lowercases", "Gaming KEYBOARD", []string{"gaming", "keyboard"}},
		{"keeps digits", "usb 3 hub", []string{"usb", "3", "hub"}},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shoes", "shoe"},
		{"glasses", "glass"},
		{"batteries", "batteri"},
		{"running", "runn"},
		{"featured", "featur"},
		{"quickly", "quick"},
		{"gas", "gas"},
		{"chess", "chess"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := stem(tt.in); got != tt.want {
				t.Errorf("stem(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
