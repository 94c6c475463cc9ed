// Package pricing computes quantity quotes from a product's slab pricing
// tiers. Resolution is pure: it reads the product and never writes anything
// back.
package pricing

import (
	"time"

	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"
)

// Quote is the result of resolving a price for a quantity.
type Quote struct {
	ProductID   uint               `json:"product_id"`
	Quantity    int                `json:"quantity"`
	BasePrice   float64            `json:"base_price"`
	UnitPrice   float64            `json:"unit_price"`
	TotalPrice  float64            `json:"total_price"`
	Savings     float64            `json:"savings"`
	AppliedSlab *model.PricingSlab `json:"applied_slab,omitempty"`
	Currency    string             `json:"currency"`
}

// Resolve selects the applicable slab tier for the quantity and computes
// unit price, total and savings. A tier applies when it is active, its
// validity window covers now, quantity >= min_quantity and, when
// max_quantity is set, quantity <= max_quantity. Among applicable tiers the
// one with the largest min_quantity wins; ties break on lowest price, then
// lowest tier ID, so the result does not depend on storage order. Savings
// never go below zero.
func Resolve(product *model.Product, quantity int, now time.Time) (*Quote, error) {
	if quantity < 0 {
		return nil, apperr.Validationf("quantity must not be negative")
	}

	quote := &Quote{
		ProductID: product.ID,
		Quantity:  quantity,
		BasePrice: product.BasePrice,
		UnitPrice: product.BasePrice,
		Currency:  product.Currency,
	}

	var applied *model.PricingSlab
	for i := range product.SlabPricing {
		slab := &product.SlabPricing[i]
		if !slab.IsActive || !slab.InWindow(now) {
			continue
		}
		if quantity < slab.MinQuantity {
			continue
		}
		if slab.MaxQuantity != nil && quantity > *slab.MaxQuantity {
			continue
		}
		if applied == nil || betterSlab(slab, applied) {
			applied = slab
		}
	}

	if applied != nil {
		slab := *applied
		quote.UnitPrice = slab.Price
		quote.AppliedSlab = &slab
		savings := (product.BasePrice - slab.Price) * float64(quantity)
		if savings > 0 {
			quote.Savings = savings
		}
	}

	quote.TotalPrice = quote.UnitPrice * float64(quantity)
	return quote, nil
}

// betterSlab reports whether a should be preferred over b.
func betterSlab(a, b *model.PricingSlab) bool {
	if a.MinQuantity != b.MinQuantity {
		return a.MinQuantity > b.MinQuantity
	}
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	return a.ID < b.ID
}

// ValidateSlabs rejects malformed tier definitions before they are stored:
// min_quantity >= 1, price >= 0, and max_quantity >= min_quantity when set.
func ValidateSlabs(slabs []model.PricingSlab) error {
	for i := range slabs {
		slab := &slabs[i]
		if slab.MinQuantity < 1 {
			return apperr.Validationf("slab %d: min_quantity must be at least 1", i)
		}
		if slab.Price < 0 {
			return apperr.Validationf("slab %d: price must not be negative", i)
		}
		if slab.MaxQuantity != nil && *slab.MaxQuantity < slab.MinQuantity {
			return apperr.Validationf("slab %d: max_quantity must be >= min_quantity", i)
		}
	}
	return nil
}
