package model

import (
	"time"

	"gorm.io/gorm"
)

// CreatedByType values for products.
const (
	CreatedByVendor     = "vendor"
	CreatedByInfluencer = "influencer"
)

// Stock status values.
const (
	StockInStock    = "in_stock"
	StockOutOfStock = "out_of_stock"
)

// Commission type values.
const (
	CommissionPercentage  = "percentage"
	CommissionFixedAmount = "fixed_amount"
)

// DefaultInfluencerRate is the fallback influencer commission rate applied
// when neither the caller nor the original product specifies one.
const DefaultInfluencerRate = 10.0

// Product is a catalog entry. Exactly one of VendorID or InfluencerID is set,
// consistent with CreatedByType. OriginalProductID is set only on linked
// products created by influencers against a vendor original.
type Product struct {
	ID                       uint                `json:"id" gorm:"primaryKey"`
	Name                     string              `json:"name" gorm:"type:varchar(255);not null"`
	Slug                     string              `json:"slug" gorm:"type:varchar(255);index"`
	Description              string              `json:"description" gorm:"type:text"`
	SKU                      string              `json:"sku" gorm:"type:varchar(100);uniqueIndex;not null"`
	BasePrice                float64             `json:"base_price" gorm:"not null"`
	Currency                 string              `json:"currency" gorm:"type:varchar(10);default:USD"`
	ProductType              string              `json:"product_type" gorm:"type:varchar(50)"`
	CreatedByType            string              `json:"created_by_type" gorm:"type:varchar(20);index;not null"`
	VendorID                 *uint               `json:"vendor_id,omitempty" gorm:"index"`
	InfluencerID             *uint               `json:"influencer_id,omitempty" gorm:"index"`
	OriginalProductID        *uint               `json:"original_product_id,omitempty" gorm:"index"`
	Categories               Strings             `json:"categories" gorm:"type:jsonb"`
	Tags                     Strings             `json:"tags" gorm:"type:jsonb"`
	InfluencerCommissionRate float64             `json:"influencer_commission_rate" gorm:"default:0"`
	TrackInventory           bool                `json:"track_inventory" gorm:"default:false"`
	StockQuantity            int                 `json:"stock_quantity" gorm:"default:0"`
	StockStatus              string              `json:"stock_status" gorm:"type:varchar(20);default:in_stock"`
	ShippingInfo             string              `json:"shipping_info" gorm:"type:text"`
	SlabPricing              []PricingSlab       `json:"slab_pricing" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CommissionSettings       *CommissionSettings `json:"commission_settings,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	IsActive                 bool                `json:"is_active" gorm:"default:true"`
	CreatedAt                time.Time           `json:"created_at"`
	UpdatedAt                time.Time           `json:"updated_at"`
	DeletedAt                gorm.DeletedAt      `json:"deleted_at,omitempty" gorm:"index"`
}

// IsLinked reports whether the product is an influencer link to a vendor
// original.
func (p *Product) IsLinked() bool {
	return p.CreatedByType == CreatedByInfluencer && p.OriginalProductID != nil
}

// PricingSlab is a quantity-based pricing tier for bulk purchases. A tier
// with no MaxQuantity is unbounded above.
type PricingSlab struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	ProductID          uint       `json:"product_id" gorm:"index;not null"`
	MinQuantity        int        `json:"min_quantity" gorm:"not null"`
	MaxQuantity        *int       `json:"max_quantity,omitempty"`
	Price              float64    `json:"price" gorm:"not null"`
	Description        string     `json:"description" gorm:"type:varchar(255)"`
	DiscountPercentage float64    `json:"discount_percentage" gorm:"default:0"`
	IsActive           bool       `json:"is_active" gorm:"default:true"`
	ValidFrom          *time.Time `json:"valid_from,omitempty"`
	ValidUntil         *time.Time `json:"valid_until,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// InWindow reports whether the slab's validity window covers now. Unset
// bounds are open.
func (s *PricingSlab) InWindow(now time.Time) bool {
	if s.ValidFrom != nil && now.Before(*s.ValidFrom) {
		return false
	}
	if s.ValidUntil != nil && now.After(*s.ValidUntil) {
		return false
	}
	return true
}

// CommissionSettings is the rate a vendor pays to influencers reselling the
// product. Present only on vendor-created products.
type CommissionSettings struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	ProductID             uint       `json:"product_id" gorm:"index;not null"`
	CommissionRate        float64    `json:"commission_rate" gorm:"default:10"`
	CommissionType        string     `json:"commission_type" gorm:"type:varchar(20);default:percentage"`
	FixedAmount           float64    `json:"fixed_amount" gorm:"default:0"`
	IsCommissionEnabled   bool       `json:"is_commission_enabled" gorm:"default:true"`
	MinimumSaleAmount     float64    `json:"minimum_sale_amount" gorm:"default:0"`
	SpecialCommissionRate *float64   `json:"special_commission_rate,omitempty"`
	SpecialRateValidFrom  *time.Time `json:"special_rate_valid_from,omitempty"`
	SpecialRateValidUntil *time.Time `json:"special_rate_valid_until,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Copy returns a by-value duplicate detached from its product, used when a
// linked product inherits the original's settings.
func (c *CommissionSettings) Copy() *CommissionSettings {
	if c == nil {
		return nil
	}
	dup := *c
	dup.ID = 0
	dup.ProductID = 0
	return &dup
}
