package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile status values for vendors and influencers.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

// Verification status values.
const (
	VerificationUnverified = "unverified"
	VerificationVerified   = "verified"
	VerificationRejected   = "rejected"
)

// Buyer account status values. Buyers need no approval gate and use a
// two-state model instead.
const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
)

// Default commission rates seeded at registration.
const (
	DefaultVendorCommissionRate     = 0.15
	DefaultInfluencerCommissionRate = 0.05
)

// Vendor represents a vendor profile owned by a user
type Vendor struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	UserID             uint           `json:"user_id" gorm:"index;not null"`
	BusinessName       string         `json:"business_name" gorm:"type:varchar(255);not null"`
	Username           string         `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	ContactEmail       string         `json:"contact_email" gorm:"type:varchar(100)"`
	Phone              string         `json:"phone" gorm:"type:varchar(30)"`
	Description        string         `json:"description" gorm:"type:text"`
	Website            string         `json:"website" gorm:"type:varchar(255)"`
	JoinedDate         time.Time      `json:"joined_date"`
	Status             string         `json:"status" gorm:"type:varchar(20);index;default:pending"`
	VerificationStatus string         `json:"verification_status" gorm:"type:varchar(20);default:unverified"`
	Rating             float64        `json:"rating" gorm:"default:0"`
	TotalSales         float64        `json:"total_sales" gorm:"default:0"`
	CommissionRate     float64        `json:"commission_rate" gorm:"default:0.15"`
	IsFeatured         bool           `json:"is_featured" gorm:"default:false"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Influencer represents an influencer profile owned by a user
type Influencer struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	UserID             uint            `json:"user_id" gorm:"index;not null"`
	DisplayName        string          `json:"display_name" gorm:"type:varchar(255);not null"`
	Username           string          `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	ContactEmail       string          `json:"contact_email" gorm:"type:varchar(100)"`
	Phone              string          `json:"phone" gorm:"type:varchar(30)"`
	Bio                string          `json:"bio" gorm:"type:text"`
	Niche              string          `json:"niche" gorm:"type:varchar(100);index"`
	JoinedDate         time.Time       `json:"joined_date"`
	Status             string          `json:"status" gorm:"type:varchar(20);index;default:pending"`
	VerificationStatus string          `json:"verification_status" gorm:"type:varchar(20);default:unverified"`
	Rating             float64         `json:"rating" gorm:"default:0"`
	TotalEarnings      float64         `json:"total_earnings" gorm:"default:0"`
	CommissionRate     float64         `json:"commission_rate" gorm:"default:0.05"`
	IsFeatured         bool            `json:"is_featured" gorm:"default:false"`
	IsVerifiedCreator  bool            `json:"is_verified_creator" gorm:"default:false"`
	SocialNetworks     []SocialNetwork `json:"social_networks" gorm:"foreignKey:InfluencerID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// SocialNetwork is one platform presence of an influencer
type SocialNetwork struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	InfluencerID   uint      `json:"influencer_id" gorm:"index;not null"`
	Platform       string    `json:"platform" gorm:"type:varchar(50);not null"`
	Handle         string    `json:"handle" gorm:"type:varchar(100)"`
	Followers      int64     `json:"followers" gorm:"default:0"`
	EngagementRate float64   `json:"engagement_rate" gorm:"default:0"`
	IsPrimary      bool      `json:"is_primary" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Buyer represents a buyer profile owned by a user
type Buyer struct {
	ID                   uint           `json:"id" gorm:"primaryKey"`
	UserID               uint           `json:"user_id" gorm:"index;not null"`
	FirstName            string         `json:"first_name" gorm:"type:varchar(100)"`
	LastName             string         `json:"last_name" gorm:"type:varchar(100)"`
	DisplayName          string         `json:"display_name" gorm:"type:varchar(255)"`
	Phone                string         `json:"phone" gorm:"type:varchar(30)"`
	CustomerSince        time.Time      `json:"customer_since"`
	AccountStatus        string         `json:"account_status" gorm:"type:varchar(20);index;default:active"`
	TotalSpent           float64        `json:"total_spent" gorm:"default:0"`
	TotalOrders          int64          `json:"total_orders" gorm:"default:0"`
	LoyaltyPoints        int64          `json:"loyalty_points" gorm:"default:0"`
	IsPremium            bool           `json:"is_premium" gorm:"default:false"`
	NewsletterSubscribed bool           `json:"newsletter_subscribed" gorm:"default:false"`
	MarketingConsent     bool           `json:"marketing_consent" gorm:"default:false"`
	Wishlist             Uints          `json:"wishlist" gorm:"type:jsonb"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
