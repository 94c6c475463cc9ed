package profile

import (
	"context"
	"time"

	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"
)

// VendorStats is the aggregate view of a vendor profile.
type VendorStats struct {
	VendorID           uint      `json:"vendor_id"`
	BusinessName       string    `json:"business_name"`
	Username           string    `json:"username"`
	TotalSales         float64   `json:"total_sales"`
	Rating             float64   `json:"rating"`
	Status             string    `json:"status"`
	VerificationStatus string    `json:"verification_status"`
	JoinedDate         time.Time `json:"joined_date"`
	IsFeatured         bool      `json:"is_featured"`
	CommissionRate     float64   `json:"commission_rate"`
}

// InfluencerStats aggregates profile and social reach figures.
type InfluencerStats struct {
	InfluencerID      uint    `json:"influencer_id"`
	DisplayName       string  `json:"display_name"`
	Username          string  `json:"username"`
	TotalEarnings     float64 `json:"total_earnings"`
	Rating            float64 `json:"rating"`
	Status            string  `json:"status"`
	IsVerifiedCreator bool    `json:"is_verified_creator"`
	TotalFollowers    int64   `json:"total_followers"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	PrimaryPlatform   string  `json:"primary_platform,omitempty"`
	PlatformCount     int     `json:"platform_count"`
}

// BuyerStats is the aggregate view of a buyer profile.
type BuyerStats struct {
	BuyerID       uint      `json:"buyer_id"`
	DisplayName   string    `json:"display_name"`
	TotalSpent    float64   `json:"total_spent"`
	TotalOrders   int64     `json:"total_orders"`
	LoyaltyPoints int64     `json:"loyalty_points"`
	IsPremium     bool      `json:"is_premium"`
	AccountStatus string    `json:"account_status"`
	CustomerSince time.Time `json:"customer_since"`
}

// GetVendorStats returns the stats view for a vendor.
func (r *Registry) GetVendorStats(ctx context.Context, vendorID uint) (*VendorStats, error) {
	vendor, err := r.store.VendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &VendorStats{
		VendorID:           vendor.ID,
		BusinessName:       vendor.BusinessName,
		Username:           vendor.Username,
		TotalSales:         vendor.TotalSales,
		Rating:             vendor.Rating,
		Status:             vendor.Status,
		VerificationStatus: vendor.VerificationStatus,
		JoinedDate:         vendor.JoinedDate,
		IsFeatured:         vendor.IsFeatured,
		CommissionRate:     vendor.CommissionRate,
	}, nil
}

// GetInfluencerStats returns the stats view for an influencer, including
// follower totals derived from the social network list.
func (r *Registry) GetInfluencerStats(ctx context.Context, influencerID uint) (*InfluencerStats, error) {
	influencer, err := r.store.InfluencerByID(ctx, influencerID)
	if err != nil {
		return nil, err
	}

	stats := &InfluencerStats{
		InfluencerID:      influencer.ID,
		DisplayName:       influencer.DisplayName,
		Username:          influencer.Username,
		TotalEarnings:     influencer.TotalEarnings,
		Rating:            influencer.Rating,
		Status:            influencer.Status,
		IsVerifiedCreator: influencer.IsVerifiedCreator,
		PlatformCount:     len(influencer.SocialNetworks),
	}

	for _, network := range influencer.SocialNetworks {
		stats.TotalFollowers += network.Followers
		stats.AvgEngagementRate += network.EngagementRate
		if network.IsPrimary {
			stats.PrimaryPlatform = network.Platform
		}
	}
	if n := len(influencer.SocialNetworks); n > 0 {
		stats.AvgEngagementRate /= float64(n)
	}

	return stats, nil
}

// GetBuyerStats returns the stats view for a buyer.
func (r *Registry) GetBuyerStats(ctx context.Context, buyerID uint) (*BuyerStats, error) {
	buyer, err := r.store.BuyerByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return &BuyerStats{
		BuyerID:       buyer.ID,
		DisplayName:   buyer.DisplayName,
		TotalSpent:    buyer.TotalSpent,
		TotalOrders:   buyer.TotalOrders,
		LoyaltyPoints: buyer.LoyaltyPoints,
		IsPremium:     buyer.IsPremium,
		AccountStatus: buyer.AccountStatus,
		CustomerSince: buyer.CustomerSince,
	}, nil
}

// Vendor returns one vendor profile.
func (r *Registry) Vendor(ctx context.Context, id uint) (*model.Vendor, error) {
	return r.store.VendorByID(ctx, id)
}

// Influencer returns one influencer profile.
func (r *Registry) Influencer(ctx context.Context, id uint) (*model.Influencer, error) {
	return r.store.InfluencerByID(ctx, id)
}

// Buyer returns one buyer profile.
func (r *Registry) Buyer(ctx context.Context, id uint) (*model.Buyer, error) {
	return r.store.BuyerByID(ctx, id)
}

// VendorByUser returns the vendor profile owned by a user, or a NotFoundError.
func (r *Registry) VendorByUser(ctx context.Context, userID uint) (*model.Vendor, error) {
	vendor, err := r.store.VendorByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor profile for user", userID)
	}
	return vendor, nil
}

// InfluencerByUser returns the influencer profile owned by a user, or a
// NotFoundError.
func (r *Registry) InfluencerByUser(ctx context.Context, userID uint) (*model.Influencer, error) {
	influencer, err := r.store.InfluencerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if influencer == nil {
		return nil, apperr.NotFound("influencer profile for user", userID)
	}
	return influencer, nil
}

// BuyerByUser returns the buyer profile owned by a user, or a NotFoundError.
func (r *Registry) BuyerByUser(ctx context.Context, userID uint) (*model.Buyer, error) {
	buyer, err := r.store.BuyerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, apperr.NotFound("buyer profile for user", userID)
	}
	return buyer, nil
}

// SaveBuyer persists buyer profile edits.
func (r *Registry) SaveBuyer(ctx context.Context, buyer *model.Buyer) error {
	return r.store.SaveBuyer(ctx, buyer)
}

// Vendors lists vendor profiles matching the filter.
func (r *Registry) Vendors(ctx context.Context, filter VendorFilter) ([]model.Vendor, error) {
	return r.store.Vendors(ctx, filter)
}

// Influencers lists influencer profiles matching the filter.
func (r *Registry) Influencers(ctx context.Context, filter InfluencerFilter) ([]model.Influencer, error) {
	return r.store.Influencers(ctx, filter)
}
