// Package store provides the GORM-backed implementation of the profile and
// catalog store interfaces. The *gorm.DB handle is injected at construction.
package store

import (
	"context"
	"errors"
	"time"

	"marketplace-service/internal/apperr"
	"marketplace-service/internal/catalog"
	"marketplace-service/internal/model"
	"marketplace-service/internal/profile"
	"marketplace-service/prometheus"

	"gorm.io/gorm"
)

// GormStore implements profile.Store and catalog.Store on PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

// New builds a GormStore around an open database handle.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var (
	_ profile.Store = (*GormStore)(nil)
	_ catalog.Store = (*GormStore)(nil)
)

// --- users ---

func (s *GormStore) CreateUser(ctx context.Context, u *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(u).Error
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

// --- profiles ---

func (s *GormStore) CreateVendor(ctx context.Context, v *model.Vendor) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(v).Error
}

func (s *GormStore) CreateInfluencer(ctx context.Context, inf *model.Influencer) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(inf).Error
}

func (s *GormStore) CreateBuyer(ctx context.Context, b *model.Buyer) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(b).Error
}

func (s *GormStore) VendorByID(ctx context.Context, id uint) (*model.Vendor, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var vendor model.Vendor
	err := s.db.WithContext(ctx).First(&vendor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("vendor", id)
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *GormStore) InfluencerByID(ctx context.Context, id uint) (*model.Influencer, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var influencer model.Influencer
	err := s.db.WithContext(ctx).Preload("SocialNetworks").First(&influencer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("influencer", id)
	}
	if err != nil {
		return nil, err
	}
	return &influencer, nil
}

func (s *GormStore) BuyerByID(ctx context.Context, id uint) (*model.Buyer, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var buyer model.Buyer
	err := s.db.WithContext(ctx).First(&buyer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("buyer", id)
	}
	if err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (s *GormStore) VendorByUser(ctx context.Context, userID uint) (*model.Vendor, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var vendor model.Vendor
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (s *GormStore) InfluencerByUser(ctx context.Context, userID uint) (*model.Influencer, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var influencer model.Influencer
	err := s.db.WithContext(ctx).Preload("SocialNetworks").Where("user_id = ?", userID).First(&influencer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &influencer, nil
}

func (s *GormStore) BuyerByUser(ctx context.Context, userID uint) (*model.Buyer, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var buyer model.Buyer
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&buyer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &buyer, nil
}

func (s *GormStore) SaveVendor(ctx context.Context, v *model.Vendor) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Save(v).Error
}

func (s *GormStore) SaveInfluencer(ctx context.Context, inf *model.Influencer) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Omit("SocialNetworks").Save(inf).Error
}

func (s *GormStore) SaveBuyer(ctx context.Context, b *model.Buyer) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Save(b).Error
}

func (s *GormStore) DeleteVendor(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Delete(&model.Vendor{}, id).Error
}

func (s *GormStore) DeleteInfluencer(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Delete(&model.Influencer{}, id).Error
}

func (s *GormStore) DeleteBuyer(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	return s.db.WithContext(ctx).Delete(&model.Buyer{}, id).Error
}

func (s *GormStore) Vendors(ctx context.Context, filter profile.VendorFilter) ([]model.Vendor, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := s.db.WithContext(ctx).Model(&model.Vendor{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Username != "" {
		query = query.Where("username = ?", filter.Username)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("business_name ILIKE ? OR username ILIKE ? OR description ILIKE ?", like, like, like)
	}

	var vendors []model.Vendor
	if err := query.Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (s *GormStore) Influencers(ctx context.Context, filter profile.InfluencerFilter) ([]model.Influencer, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := s.db.WithContext(ctx).Model(&model.Influencer{}).Preload("SocialNetworks")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Username != "" {
		query = query.Where("username = ?", filter.Username)
	}
	if filter.Niche != "" {
		query = query.Where("niche = ?", filter.Niche)
	}
	if filter.VerifiedCreator != nil {
		query = query.Where("is_verified_creator = ?", *filter.VerifiedCreator)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("display_name ILIKE ? OR username ILIKE ? OR bio ILIKE ?", like, like, like)
	}

	var influencers []model.Influencer
	if err := query.Find(&influencers).Error; err != nil {
		return nil, err
	}
	return influencers, nil
}

// Counter updates run as single UPDATE statements so concurrent increments
// do not lose writes.

func (s *GormStore) AddVendorSales(ctx context.Context, id uint, amount float64) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.WithContext(ctx).Model(&model.Vendor{}).Where("id = ?", id).
		Update("total_sales", gorm.Expr("total_sales + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("vendor", id)
	}
	return nil
}

func (s *GormStore) AddInfluencerEarnings(ctx context.Context, id uint, amount float64) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.WithContext(ctx).Model(&model.Influencer{}).Where("id = ?", id).
		Update("total_earnings", gorm.Expr("total_earnings + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("influencer", id)
	}
	return nil
}

func (s *GormStore) AddBuyerOrder(ctx context.Context, id uint, spent float64, orders, points int64) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	result := s.db.WithContext(ctx).Model(&model.Buyer{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_spent":    gorm.Expr("total_spent + ?", spent),
			"total_orders":   gorm.Expr("total_orders + ?", orders),
			"loyalty_points": gorm.Expr("loyalty_points + ?", points),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("buyer", id)
	}
	return nil
}

func (s *GormStore) ReplaceSocialNetworks(ctx context.Context, influencerID uint, networks []model.SocialNetwork) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("influencer_id = ?", influencerID).Delete(&model.SocialNetwork{}).Error; err != nil {
			return err
		}
		for i := range networks {
			networks[i].ID = 0
			networks[i].InfluencerID = influencerID
		}
		if len(networks) == 0 {
			return nil
		}
		return tx.Create(&networks).Error
	})
}

// --- products ---

func (s *GormStore) CreateProduct(ctx context.Context, p *model.Product) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	return s.db.WithContext(ctx).Create(p).Error
}

func (s *GormStore) ProductByID(ctx context.Context, id uint) (*model.Product, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("SlabPricing").
		Preload("CommissionSettings").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) Products(ctx context.Context, filter catalog.ProductFilter) ([]model.Product, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	query := s.db.WithContext(ctx).Model(&model.Product{}).
		Preload("SlabPricing").
		Preload("CommissionSettings")
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.InfluencerID != nil {
		query = query.Where("influencer_id = ?", *filter.InfluencerID)
	}
	if filter.OriginalProductID != nil {
		query = query.Where("original_product_id = ?", *filter.OriginalProductID)
	}
	if filter.CreatedByType != "" {
		query = query.Where("created_by_type = ?", filter.CreatedByType)
	}
	if filter.Category != "" {
		query = query.Where("categories @> ?", `["`+filter.Category+`"]`)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) SaveProduct(ctx context.Context, p *model.Product) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	return s.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(p).Error
}

func (s *GormStore) DeleteProduct(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product", id)
	}
	return nil
}
