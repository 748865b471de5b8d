// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

// blendRecommendations merges content and collaborative lists into one
// ranked hybrid list. Content entries contribute score * weights.Content,
// collaborative entries score * weights.Collaborative, combined additively
// when an item appears in both. With one empty input the blend degrades to
// the other list scaled by its own weight; with both empty it returns an
// empty list and the caller must fall back.
func blendRecommendations(content, collaborative []Recommendation, weights BlendWeights, limit int) []Recommendation {
	combined := make(map[string]float64, len(content)+len(collaborative))
	for _, r := range content {
		combined[r.ItemID] += r.Score * weights.Content
	}
	for _, r := range collaborative {
		combined[r.ItemID] += r.Score * weights.Collaborative
	}

	recs := make([]Recommendation, 0, len(combined))
	for itemID, score := range combined {
		recs = append(recs, Recommendation{
			ItemID: itemID,
			Score:  score,
			Method: MethodHybrid,
		})
	}

	sortRecommendations(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
