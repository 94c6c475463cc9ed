package profile

import (
	"context"

	"marketplace-service/internal/model"
)

// VendorFilter narrows vendor listings.
type VendorFilter struct {
	Status   string
	Featured *bool
	Username string
	Search   string
}

// InfluencerFilter narrows influencer listings.
type InfluencerFilter struct {
	Status          string
	Featured        *bool
	Username        string
	Niche           string
	VerifiedCreator *bool
	Search          string
}

// Store is the persistence collaborator of the registry. The *ByUser lookups
// return (nil, nil) when no profile of that variant exists for the user; the
// *ByID lookups return a NotFoundError instead.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id uint) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error

	CreateVendor(ctx context.Context, v *model.Vendor) error
	CreateInfluencer(ctx context.Context, inf *model.Influencer) error
	CreateBuyer(ctx context.Context, b *model.Buyer) error

	VendorByID(ctx context.Context, id uint) (*model.Vendor, error)
	InfluencerByID(ctx context.Context, id uint) (*model.Influencer, error)
	BuyerByID(ctx context.Context, id uint) (*model.Buyer, error)

	VendorByUser(ctx context.Context, userID uint) (*model.Vendor, error)
	InfluencerByUser(ctx context.Context, userID uint) (*model.Influencer, error)
	BuyerByUser(ctx context.Context, userID uint) (*model.Buyer, error)

	SaveVendor(ctx context.Context, v *model.Vendor) error
	SaveInfluencer(ctx context.Context, inf *model.Influencer) error
	SaveBuyer(ctx context.Context, b *model.Buyer) error

	DeleteVendor(ctx context.Context, id uint) error
	DeleteInfluencer(ctx context.Context, id uint) error
	DeleteBuyer(ctx context.Context, id uint) error

	Vendors(ctx context.Context, filter VendorFilter) ([]model.Vendor, error)
	Influencers(ctx context.Context, filter InfluencerFilter) ([]model.Influencer, error)

	// Counter updates run as storage-side atomic increments, not
	// read-modify-write.
	AddVendorSales(ctx context.Context, id uint, amount float64) error
	AddInfluencerEarnings(ctx context.Context, id uint, amount float64) error
	AddBuyerOrder(ctx context.Context, id uint, spent float64, orders, points int64) error

	ReplaceSocialNetworks(ctx context.Context, influencerID uint, networks []model.SocialNetwork) error
}
