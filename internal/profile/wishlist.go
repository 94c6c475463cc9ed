package profile

import (
	"context"

	"marketplace-service/internal/model"

	"go.uber.org/zap"
)

// AddToWishlist returns the buyer with the product added. The stored list is
// replaced with a freshly built slice; the existing value is never mutated
// in place.
func (r *Registry) AddToWishlist(ctx context.Context, buyerID, productID uint) (*model.Buyer, error) {
	buyer, err := r.store.BuyerByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	updated := make(model.Uints, 0, len(buyer.Wishlist)+1)
	for _, id := range buyer.Wishlist {
		if id == productID {
			// Already present, nothing to change.
			return buyer, nil
		}
		updated = append(updated, id)
	}
	updated = append(updated, productID)

	buyer.Wishlist = updated
	if err := r.store.SaveBuyer(ctx, buyer); err != nil {
		return nil, err
	}
	r.log.Info("Product added to wishlist",
		zap.Uint("buyer_id", buyerID), zap.Uint("product_id", productID))
	return buyer, nil
}

// RemoveFromWishlist returns the buyer with the product removed.
func (r *Registry) RemoveFromWishlist(ctx context.Context, buyerID, productID uint) (*model.Buyer, error) {
	buyer, err := r.store.BuyerByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	updated := make(model.Uints, 0, len(buyer.Wishlist))
	for _, id := range buyer.Wishlist {
		if id != productID {
			updated = append(updated, id)
		}
	}
	if len(updated) == len(buyer.Wishlist) {
		return buyer, nil
	}

	buyer.Wishlist = updated
	if err := r.store.SaveBuyer(ctx, buyer); err != nil {
		return nil, err
	}
	r.log.Info("Product removed from wishlist",
		zap.Uint("buyer_id", buyerID), zap.Uint("product_id", productID))
	return buyer, nil
}
