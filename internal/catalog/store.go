package catalog

import (
	"context"

	"marketplace-service/internal/model"
)

// ProductFilter narrows product listings. Nil/zero fields are ignored.
type ProductFilter struct {
	VendorID          *uint
	InfluencerID      *uint
	OriginalProductID *uint
	CreatedByType     string
	Category          string
	ActiveOnly        bool
}

// Store is the persistence collaborator of the catalog. Profile lookups by
// user return (nil, nil) when the user has no profile of that variant;
// lookups by ID return a NotFoundError. ProductByID loads slab pricing and
// commission settings with the product.
type Store interface {
	VendorByID(ctx context.Context, id uint) (*model.Vendor, error)
	InfluencerByID(ctx context.Context, id uint) (*model.Influencer, error)
	VendorByUser(ctx context.Context, userID uint) (*model.Vendor, error)
	InfluencerByUser(ctx context.Context, userID uint) (*model.Influencer, error)

	CreateProduct(ctx context.Context, p *model.Product) error
	ProductByID(ctx context.Context, id uint) (*model.Product, error)
	Products(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	SaveProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}
