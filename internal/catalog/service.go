// Package catalog implements the product catalog and linking engine:
// vendor-authored originals, influencer-authored linked products and the
// commission/pricing inheritance applied at link time.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"
	"marketplace-service/internal/pricing"
	"marketplace-service/pkg/cache"

	"go.uber.org/zap"
)

// ProductInput carries fields for creating a product.
type ProductInput struct {
	Name                     string                    `json:"name"`
	Slug                     string                    `json:"slug"`
	Description              string                    `json:"description"`
	SKU                      string                    `json:"sku"`
	BasePrice                float64                   `json:"base_price"`
	Currency                 string                    `json:"currency"`
	ProductType              string                    `json:"product_type"`
	Categories               model.Strings             `json:"categories"`
	Tags                     model.Strings             `json:"tags"`
	InfluencerCommissionRate *float64                  `json:"influencer_commission_rate,omitempty"`
	TrackInventory           bool                      `json:"track_inventory"`
	StockQuantity            *int                      `json:"stock_quantity,omitempty"`
	ShippingInfo             string                    `json:"shipping_info"`
	SlabPricing              []model.PricingSlab       `json:"slab_pricing"`
	CommissionSettings       *model.CommissionSettings `json:"commission_settings,omitempty"`
	OriginalProductID        *uint                     `json:"original_product_id,omitempty"`
}

// LinkOverrides carries the influencer-supplied overrides applied on top of
// the copied original when creating a linked product.
type LinkOverrides struct {
	Name                     string   `json:"name"`
	Description              string   `json:"description"`
	BasePrice                *float64 `json:"base_price,omitempty"`
	InfluencerCommissionRate *float64 `json:"influencer_commission_rate,omitempty"`
}

// Service is the catalog engine. The cache is optional; a nil cache disables
// product read caching.
type Service struct {
	store Store
	cache *cache.Client
	log   *zap.Logger
	now   func() time.Time
}

// NewService builds a catalog Service.
func NewService(store Store, cacheClient *cache.Client, log *zap.Logger) *Service {
	return &Service{store: store, cache: cacheClient, log: log, now: time.Now}
}

// CreateOriginalProduct creates a vendor-authored product. Default
// commission settings are assigned when none are supplied and a SKU is
// generated when absent.
func (s *Service) CreateOriginalProduct(ctx context.Context, vendorID uint, input ProductInput) (*model.Product, error) {
	vendor, err := s.store.VendorByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if err := sellerAllowed("vendor", vendor.Status); err != nil {
		return nil, err
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	sku := input.SKU
	if sku == "" {
		sku = generateSKU("VND", s.now())
	}

	commission := input.CommissionSettings
	if commission == nil {
		rate := model.DefaultInfluencerRate
		if input.InfluencerCommissionRate != nil {
			rate = *input.InfluencerCommissionRate
		}
		commission = &model.CommissionSettings{
			CommissionRate:      rate,
			CommissionType:      model.CommissionPercentage,
			MinimumSaleAmount:   0,
			IsCommissionEnabled: true,
		}
	}

	product := &model.Product{
		Name:               input.Name,
		Slug:               input.Slug,
		Description:        input.Description,
		SKU:                sku,
		BasePrice:          input.BasePrice,
		Currency:           currencyOrDefault(input.Currency),
		ProductType:        input.ProductType,
		CreatedByType:      model.CreatedByVendor,
		VendorID:           &vendor.ID,
		Categories:         input.Categories,
		Tags:               input.Tags,
		ShippingInfo:       input.ShippingInfo,
		SlabPricing:        copySlabs(input.SlabPricing),
		CommissionSettings: commission,
		IsActive:           true,
	}
	if input.InfluencerCommissionRate != nil {
		product.InfluencerCommissionRate = *input.InfluencerCommissionRate
	}
	applyInventory(product, input)

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("Original product created",
		zap.Uint("product_id", product.ID),
		zap.Uint("vendor_id", vendor.ID),
		zap.String("sku", product.SKU))
	return product, nil
}

// CreateLinkedProduct creates an influencer-authored product reselling a
// vendor original. Pricing slabs and commission settings are copied by
// value: the original and the link evolve independently afterwards.
func (s *Service) CreateLinkedProduct(ctx context.Context, influencerID, originalProductID uint, overrides LinkOverrides) (*model.Product, error) {
	influencer, err := s.store.InfluencerByID(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	if err := sellerAllowed("influencer", influencer.Status); err != nil {
		return nil, err
	}

	original, err := s.store.ProductByID(ctx, originalProductID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("original product", originalProductID)
		}
		return nil, err
	}
	if original.CreatedByType != model.CreatedByVendor {
		// Linking to a linked product would build multi-hop chains.
		return nil, apperr.Validationf("can only link to vendor-created products")
	}

	name := overrides.Name
	if name == "" {
		name = fmt.Sprintf("%s (by %s)", original.Name, influencer.DisplayName)
	}
	description := overrides.Description
	if description == "" {
		description = original.Description
	}
	basePrice := original.BasePrice
	if overrides.BasePrice != nil {
		basePrice = *overrides.BasePrice
	}

	// The product-level rate and the settings rate resolve independently:
	// each falls back to its own counterpart on the original before the
	// platform default.
	productRate := resolveRate(overrides.InfluencerCommissionRate, original.InfluencerCommissionRate)

	commission := original.CommissionSettings.Copy()
	if commission != nil {
		commission.CommissionRate = resolveRate(overrides.InfluencerCommissionRate, original.CommissionSettings.CommissionRate)
	}

	product := &model.Product{
		Name:                     name,
		Description:              description,
		SKU:                      generateSKU("INF", s.now()),
		BasePrice:                basePrice,
		Currency:                 original.Currency,
		ProductType:              original.ProductType,
		CreatedByType:            model.CreatedByInfluencer,
		InfluencerID:             &influencer.ID,
		OriginalProductID:        &original.ID,
		Categories:               append(model.Strings{}, original.Categories...),
		Tags:                     append(model.Strings{}, original.Tags...),
		InfluencerCommissionRate: productRate,
		ShippingInfo:             original.ShippingInfo,
		SlabPricing:              copySlabs(original.SlabPricing),
		CommissionSettings:       commission,
		// Linked products resell against the original's stock; they do not
		// track their own.
		TrackInventory: false,
		StockStatus:    model.StockInStock,
		IsActive:       true,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("Linked product created",
		zap.Uint("product_id", product.ID),
		zap.Uint("influencer_id", influencer.ID),
		zap.Uint("original_product_id", original.ID),
		zap.Float64("commission_rate", productRate))
	return product, nil
}

// CreateProduct dispatches on the caller's resolved profile: vendors create
// originals, influencers create standalone or linked products depending on
// whether an original is referenced.
func (s *Service) CreateProduct(ctx context.Context, userID uint, input ProductInput) (*model.Product, error) {
	vendor, err := s.store.VendorByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor != nil {
		return s.CreateOriginalProduct(ctx, vendor.ID, input)
	}

	influencer, err := s.store.InfluencerByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if influencer != nil {
		if input.OriginalProductID != nil {
			overrides := LinkOverrides{
				Name:                     input.Name,
				Description:              input.Description,
				InfluencerCommissionRate: input.InfluencerCommissionRate,
			}
			if input.BasePrice > 0 {
				overrides.BasePrice = &input.BasePrice
			}
			return s.CreateLinkedProduct(ctx, influencer.ID, *input.OriginalProductID, overrides)
		}
		return s.createInfluencerProduct(ctx, influencer, input)
	}

	return nil, apperr.Permissionf("only vendors and influencers can create products")
}

// createInfluencerProduct creates a standalone influencer product. These
// carry no commission settings: influencers do not pay commission to anyone
// else.
func (s *Service) createInfluencerProduct(ctx context.Context, influencer *model.Influencer, input ProductInput) (*model.Product, error) {
	if err := sellerAllowed("influencer", influencer.Status); err != nil {
		return nil, err
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	sku := input.SKU
	if sku == "" {
		sku = generateSKU("INF", s.now())
	}

	product := &model.Product{
		Name:          input.Name,
		Slug:          input.Slug,
		Description:   input.Description,
		SKU:           sku,
		BasePrice:     input.BasePrice,
		Currency:      currencyOrDefault(input.Currency),
		ProductType:   input.ProductType,
		CreatedByType: model.CreatedByInfluencer,
		InfluencerID:  &influencer.ID,
		Categories:    input.Categories,
		Tags:          input.Tags,
		ShippingInfo:  input.ShippingInfo,
		SlabPricing:   copySlabs(input.SlabPricing),
		IsActive:      true,
	}
	applyInventory(product, input)

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("Influencer product created",
		zap.Uint("product_id", product.ID),
		zap.Uint("influencer_id", influencer.ID))
	return product, nil
}

// Product returns a product with slab pricing and commission settings,
// served from the redis cache when available.
func (s *Service) Product(ctx context.Context, id uint) (*model.Product, error) {
	key := productCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached model.Product
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		} else if !cache.IsMiss(err) {
			s.log.Warn("Product cache read failed", zap.Uint("product_id", id), zap.Error(err))
		}
	}

	product, err := s.store.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(product); err == nil {
			if err := s.cache.Set(ctx, key, data); err != nil {
				s.log.Warn("Product cache write failed", zap.Uint("product_id", id), zap.Error(err))
			}
		}
	}
	return product, nil
}

// Products lists products matching the filter.
func (s *Service) Products(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	return s.store.Products(ctx, filter)
}

// ProductsByVendor lists a vendor's original products.
func (s *Service) ProductsByVendor(ctx context.Context, vendorID uint) ([]model.Product, error) {
	return s.store.Products(ctx, ProductFilter{
		VendorID:      &vendorID,
		CreatedByType: model.CreatedByVendor,
	})
}

// ProductsByInfluencer lists an influencer's products.
func (s *Service) ProductsByInfluencer(ctx context.Context, influencerID uint) ([]model.Product, error) {
	return s.store.Products(ctx, ProductFilter{
		InfluencerID:  &influencerID,
		CreatedByType: model.CreatedByInfluencer,
	})
}

// LinkedProducts lists the influencer links created against an original.
func (s *Service) LinkedProducts(ctx context.Context, originalProductID uint) ([]model.Product, error) {
	return s.store.Products(ctx, ProductFilter{OriginalProductID: &originalProductID})
}

// UpdateProduct persists product edits and invalidates the cache entry.
func (s *Service) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := pricing.ValidateSlabs(product.SlabPricing); err != nil {
		return err
	}
	if err := s.store.SaveProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate(ctx, product.ID)
	return nil
}

// DeleteProduct removes a product and invalidates the cache entry.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Quote resolves the slab price for a quantity of a product.
func (s *Service) Quote(ctx context.Context, productID uint, quantity int) (*pricing.Quote, error) {
	product, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return pricing.Resolve(product, quantity, s.now())
}

func (s *Service) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		s.log.Warn("Product cache invalidation failed", zap.Uint("product_id", id), zap.Error(err))
	}
}

func productCacheKey(id uint) string {
	return "product:" + strconv.FormatUint(uint64(id), 10)
}

// sellerAllowed gates product creation on profile status: pending and
// approved sellers may list, rejected and suspended ones may not.
func sellerAllowed(kind, status string) error {
	switch status {
	case model.StatusPending, model.StatusApproved:
		return nil
	default:
		return apperr.Permissionf("%s profile with status %s cannot create products", kind, status)
	}
}

func validateInput(input *ProductInput) error {
	if input.Name == "" {
		return apperr.Validationf("product name is required")
	}
	if input.BasePrice < 0 {
		return apperr.Validationf("base_price must not be negative")
	}
	return pricing.ValidateSlabs(input.SlabPricing)
}

func applyInventory(product *model.Product, input ProductInput) {
	product.TrackInventory = input.TrackInventory
	if !input.TrackInventory {
		product.StockStatus = model.StockInStock
		return
	}
	if input.StockQuantity == nil {
		product.StockQuantity = 0
		product.StockStatus = model.StockOutOfStock
		return
	}
	product.StockQuantity = *input.StockQuantity
	if *input.StockQuantity > 0 {
		product.StockStatus = model.StockInStock
	} else {
		product.StockStatus = model.StockOutOfStock
	}
}

// resolveRate resolves a commission rate: influencer override, else the
// inherited value, else the platform default.
func resolveRate(override *float64, inherited float64) float64 {
	if override != nil {
		return *override
	}
	if inherited > 0 {
		return inherited
	}
	return model.DefaultInfluencerRate
}

// copySlabs duplicates tiers by value, detached from their source product.
func copySlabs(slabs []model.PricingSlab) []model.PricingSlab {
	if len(slabs) == 0 {
		return nil
	}
	copied := make([]model.PricingSlab, len(slabs))
	for i, slab := range slabs {
		slab.ID = 0
		slab.ProductID = 0
		copied[i] = slab
	}
	return copied
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}

func generateSKU(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}
