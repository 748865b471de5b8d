// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package recommend

import "time"

// InteractionType classifies user-item interactions for implicit feedback.
type InteractionType int

const (
	// InteractionView indicates the user viewed the product page.
	InteractionView InteractionType = iota
	// InteractionLike indicates the user liked or favorited the product.
	InteractionLike
	// InteractionCartAdd indicates the user added the product to the cart.
	InteractionCartAdd
	// InteractionPurchase indicates the user purchased the product.
	InteractionPurchase

	interactionTypeCount
)

// String returns a human-readable name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionView:
		return "view"
	case InteractionLike:
		return "like"
	case InteractionCartAdd:
		return "cart_add"
	case InteractionPurchase:
		return "purchase"
	default:
		return "unknown"
	}
}

// Weight returns the fixed accumulation weight for this interaction type.
// Stronger signals carry larger weights; purchases dominate views.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionView:
		return 1
	case InteractionLike:
		return 3
	case InteractionCartAdd:
		return 5
	case InteractionPurchase:
		return 10
	default:
		return 0
	}
}

// Valid reports whether t is one of the four known interaction types.
func (t InteractionType) Valid() bool {
	return t >= InteractionView && t < interactionTypeCount
}

// ParseInteractionType maps a wire-format string to an InteractionType.
// Unknown strings return ErrInvalidInteractionType.
func ParseInteractionType(s string) (InteractionType, error) {
	switch s {
	case "view":
		return InteractionView, nil
	case "like":
		return InteractionLike, nil
	case "cart_add":
		return InteractionCartAdd, nil
	case "purchase":
		return InteractionPurchase, nil
	default:
		return 0, ErrInvalidInteractionType
	}
}

// Method identifies the strategy that produced a recommendation.
type Method int

const (
	// MethodContent marks recommendations from content similarity.
	MethodContent Method = iota
	// MethodCollaborative marks recommendations from neighbor preferences.
	MethodCollaborative
	// MethodHybrid marks recommendations from the weighted blend.
	MethodHybrid
	// MethodFallback marks non-personalized popularity recommendations.
	MethodFallback
)

// String returns a human-readable method name.
func (m Method) String() string {
	switch m {
	case MethodContent:
		return "content"
	case MethodCollaborative:
		return "collaborative"
	case MethodHybrid:
		return "hybrid"
	case MethodFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so Method serializes as
// its name in JSON responses.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Mode selects a public recommendation strategy.
type Mode int

const (
	// ModeContent recommends items similar to the user's strongest item.
	ModeContent Mode = iota
	// ModeCollaborative recommends items liked by similar users.
	ModeCollaborative
	// ModeHybrid blends content and collaborative scores.
	ModeHybrid
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeContent:
		return "content"
	case ModeCollaborative:
		return "collaborative"
	case ModeHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// ParseMode maps a wire-format string to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "content":
		return ModeContent, true
	case "collaborative":
		return ModeCollaborative, true
	case "hybrid":
		return ModeHybrid, true
	default:
		return 0, false
	}
}

// CatalogItem is one product record as delivered by the catalog supplier.
// Items are immutable once indexed for a generation and replaced wholesale
// on rebuild.
type CatalogItem struct {
	// ID is the stable, unique product identifier.
	ID string `json:"id"`

	// Name is the product display name.
	Name string `json:"name"`

	// Description is the free-text product description.
	Description string `json:"description"`

	// Manufacturer is the product manufacturer or brand.
	Manufacturer string `json:"manufacturer,omitempty"`

	// Category is the top-level product category.
	Category string `json:"category"`

	// Subcategory refines the category; only compared when categories match.
	Subcategory string `json:"subcategory,omitempty"`

	// Price is the list price.
	Price float64 `json:"price"`

	// Rating is the average customer rating in [0, 5].
	Rating float64 `json:"rating"`

	// ViewCount is the all-time product page view count, used as a
	// popularity tie-breaker by the fallback ranker.
	ViewCount int64 `json:"view_count"`

	// Featured marks merchandised products.
	Featured bool `json:"featured"`

	// OnSale marks discounted products.
	OnSale bool `json:"on_sale"`
}

// InteractionEvent is one weighted user-item event as delivered by the
// interaction supplier. Events are append-only.
type InteractionEvent struct {
	// UserID identifies the acting user.
	UserID string `json:"user_id"`

	// ItemID identifies the product acted on.
	ItemID string `json:"item_id"`

	// Type classifies the interaction.
	Type InteractionType `json:"type"`

	// Rating is an optional explicit rating carried on the event.
	// Zero means unset; it does not alter the fixed weight table.
	Rating float64 `json:"rating,omitempty"`

	// Timestamp is when the interaction occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Recommendation is one ranked output record. It is produced per request
// and never persisted by the engine.
type Recommendation struct {
	// ItemID identifies the recommended product.
	ItemID string `json:"item_id"`

	// Score is the strategy-specific ranking score; comparable within one
	// response, not across methods.
	Score float64 `json:"score"`

	// Method names the strategy that produced this entry, so callers can
	// distinguish personalized from generic results.
	Method Method `json:"method"`
}

// UserSimilarity pairs a neighbor user with their similarity to the target.
type UserSimilarity struct {
	// UserID identifies the neighbor.
	UserID string `json:"user_id"`

	// Similarity is cosine similarity over commonly interacted items,
	// in [0, 1].
	Similarity float64 `json:"similarity"`
}
