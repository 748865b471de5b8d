// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import "fmt"

// Config contains all tunables for the recommendation engine.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Content weights the five content similarity terms.
	Content ContentWeights `koanf:"content" json:"content"`

	// Blend weights the hybrid combination of strategies.
	Blend BlendWeights `koanf:"blend" json:"blend"`

	// Collaborative contains neighbor-selection parameters.
	Collaborative CollaborativeConfig `koanf:"collaborative" json:"collaborative"`

	// Limits contains operational limits on result sizes.
	Limits LimitsConfig `koanf:"limits" json:"limits"`
}

// ContentWeights weights the terms of the content similarity score.
// Each term is normalized to [0, 1] before weighting; weights should sum
// to 1 so the total stays in [0, 1].
type ContentWeights struct {
	// Text is the weight of TF-IDF cosine similarity.
	Text float64 `koanf:"text" json:"text"`

	// Category is the weight of exact category equality.
	Category float64 `koanf:"category" json:"category"`

	// Subcategory is the weight of subcategory equality, counted only
	// when the categories already match.
	Subcategory float64 `koanf:"subcategory" json:"subcategory"`

	// Price is the weight of relative price closeness.
	Price float64 `koanf:"price" json:"price"`

	// Rating is the weight of rating closeness.
	Rating float64 `koanf:"rating" json:"rating"`
}

// BlendWeights weights the hybrid combination.
type BlendWeights struct {
	// Content scales content scores in the hybrid blend.
	Content float64 `koanf:"content" json:"content"`

	// Collaborative scales collaborative scores in the hybrid blend.
	Collaborative float64 `koanf:"collaborative" json:"collaborative"`
}

// CollaborativeConfig contains parameters for user-based filtering.
type CollaborativeConfig struct {
	// MinSimilarity excludes neighbors below this cosine similarity
	// as noise.
	MinSimilarity float64 `koanf:"min_similarity" json:"min_similarity"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is the result count when the caller passes zero.
	DefaultLimit int `koanf:"default_limit" json:"default_limit"`

	// MaxLimit caps the result count a caller may request.
	MaxLimit int `koanf:"max_limit" json:"max_limit"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Content: ContentWeights{
			Text:        0.40,
			Category:    0.30,
			Subcategory: 0.10,
			Price:       0.10,
			Rating:      0.10,
		},
		Blend: BlendWeights{
			Content:       0.6,
			Collaborative: 0.4,
		},
		Collaborative: CollaborativeConfig{
			MinSimilarity: 0.1,
		},
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
	}
}

// Validate checks the configuration for usability.
func (c *Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"content.text", c.Content.Text},
		{"content.category", c.Content.Category},
		{"content.subcategory", c.Content.Subcategory},
		{"content.price", c.Content.Price},
		{"content.rating", c.Content.Rating},
		{"blend.content", c.Blend.Content},
		{"blend.collaborative", c.Blend.Collaborative},
	}
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%s weight must be non-negative, got %f", w.name, w.value)
		}
	}

	sum := c.Content.Text + c.Content.Category + c.Content.Subcategory +
		c.Content.Price + c.Content.Rating
	if sum <= 0 {
		return fmt.Errorf("content weights must not all be zero")
	}

	if c.Blend.Content+c.Blend.Collaborative <= 0 {
		return fmt.Errorf("blend weights must not all be zero")
	}

	if c.Collaborative.MinSimilarity < 0 || c.Collaborative.MinSimilarity > 1 {
		return fmt.Errorf("collaborative.min_similarity must be in [0, 1], got %f", c.Collaborative.MinSimilarity)
	}

	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit %d must be >= default_limit %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
