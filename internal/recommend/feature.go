// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// FeatureVector is the comparable representation of one catalog item:
// an L2-normalized, stemmed TF-IDF term vector plus a copy of the
// categorical and numeric fields used by the non-text similarity terms.
// One vector exists per indexed item; its index position is stable for
// the lifetime of a generation.
type FeatureVector struct {
	ItemID       string
	Category     string
	Subcategory  string
	Manufacturer string
	Price        float64
	Rating       float64
	Featured     bool
	OnSale       bool

	// terms holds the TF-IDF weights sorted by term so dot products are
	// evaluated in a fixed order and stay bit-identical across calls.
	terms []termWeight

	// lookup indexes terms by name for O(1) access during dot products.
	lookup map[string]float64
}

// termWeight is one entry of a sparse term vector.
type termWeight struct {
	term   string
	weight float64
}

// FeatureIndexer converts catalog items into feature vectors.
// Indexing an unchanged catalog yields identical vectors.
type FeatureIndexer struct{}

// NewFeatureIndexer creates a new feature indexer.
func NewFeatureIndexer() *FeatureIndexer {
	return &FeatureIndexer{}
}

// Index builds one feature vector per catalog item. Term weights use the
// smoothed IDF variant log((1+N)/(1+df)) + 1, which keeps terms occurring
// in every document non-zero so that identical items always reach full
// text similarity. Returns ErrEmptyCatalog for a zero-item catalog.
func (fi *FeatureIndexer) Index(catalog []CatalogItem) ([]FeatureVector, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	// Term frequencies per item; duplicated supplier ids keep the first
	// occurrence.
	seen := make(map[string]struct{}, len(catalog))
	items := make([]CatalogItem, 0, len(catalog))
	tfs := make([]map[string]int, 0, len(catalog))
	totals := make([]int, 0, len(catalog))
	df := make(map[string]int)

	for _, item := range catalog {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		blob := strings.Join([]string{
			item.Name, item.Description, item.Category, item.Subcategory, item.Manufacturer,
		}, " ")
		tokens := tokenize(blob)

		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[stem(tok)]++
		}
		for term := range tf {
			df[term]++
		}

		items = append(items, item)
		tfs = append(tfs, tf)
		totals = append(totals, len(tokens))
	}

	n := float64(len(items))
	vectors := make([]FeatureVector, len(items))

	for i, item := range items {
		vec := FeatureVector{
			ItemID:       item.ID,
			Category:     item.Category,
			Subcategory:  item.Subcategory,
			Manufacturer: item.Manufacturer,
			Price:        item.Price,
			Rating:       item.Rating,
			Featured:     item.Featured,
			OnSale:       item.OnSale,
		}

		tf := tfs[i]
		total := totals[i]
		if total > 0 {
			vec.terms = make([]termWeight, 0, len(tf))
			vec.lookup = make(map[string]float64, len(tf))
			for term, count := range tf {
				idf := math.Log((1+n)/(1+float64(df[term]))) + 1
				w := float64(count) / float64(total) * idf
				vec.terms = append(vec.terms, termWeight{term: term, weight: w})
			}
			sort.Slice(vec.terms, func(a, b int) bool {
				return vec.terms[a].term < vec.terms[b].term
			})

			var norm float64
			for _, tw := range vec.terms {
				norm += tw.weight * tw.weight
			}
			norm = math.Sqrt(norm)
			for j := range vec.terms {
				vec.terms[j].weight /= norm
				vec.lookup[vec.terms[j].term] = vec.terms[j].weight
			}
		}

		vectors[i] = vec
	}

	return vectors, nil
}

// textCosine returns the cosine similarity of two normalized term vectors.
// Two items with no text at all count as identical text.
func textCosine(a, b *FeatureVector) float64 {
	if len(a.terms) == 0 && len(b.terms) == 0 {
		return 1
	}
	if len(a.terms) == 0 || len(b.terms) == 0 {
		return 0
	}

	// Iterate the shorter vector in its fixed term order.
	small, large := a, b
	if len(b.terms) < len(a.terms) {
		small, large = b, a
	}

	var dot float64
	for _, tw := range small.terms {
		if w, ok := large.lookup[tw.term]; ok {
			dot += tw.weight * w
		}
	}

	// Vectors are unit length, so the dot product is the cosine.
	if dot > 1 {
		dot = 1
	}
	return dot
}

// tokenize splits text into lowercase alphanumeric words.
func tokenize(text string) []string {
	var words []string
	var word strings.Builder

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(r)
		} else if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}
	if word.Len() > 0 {
		words = append(words, word.String())
	}

	return words
}

// stem reduces a token to a crude stem by stripping common English
// suffixes. Aggressive enough to conflate singular/plural and simple verb
// forms; conservative enough to leave short tokens alone.
func stem(word string) string {
	switch {
	case strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "i"
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return word[:len(word)-1]
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ly") && len(word) > 4:
		return word[:len(word)-2]
	default:
		return word
	}
}
