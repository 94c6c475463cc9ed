package catalog

import (
	"context"
	"strings"
	"testing"

	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore is a testify mock over the catalog's persistence interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) VendorByID(ctx context.Context, id uint) (*model.Vendor, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Vendor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) InfluencerByID(ctx context.Context, id uint) (*model.Influencer, error) {
	args := m.Called(ctx, id)
	if inf := args.Get(0); inf != nil {
		return inf.(*model.Influencer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) VendorByUser(ctx context.Context, userID uint) (*model.Vendor, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*model.Vendor), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) InfluencerByUser(ctx context.Context, userID uint) (*model.Influencer, error) {
	args := m.Called(ctx, userID)
	if inf := args.Get(0); inf != nil {
		return inf.(*model.Influencer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateProduct(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStore) ProductByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Products(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if p := args.Get(0); p != nil {
		return p.([]model.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) SaveProduct(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStore) DeleteProduct(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(store *MockStore) *Service {
	return NewService(store, nil, zap.NewNop())
}

func intPtr(v int) *int           { return &v }
func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }

func approvedVendor(id uint) *model.Vendor {
	return &model.Vendor{ID: id, Status: model.StatusApproved, BusinessName: "Acme"}
}

func approvedInfluencer(id uint) *model.Influencer {
	return &model.Influencer{ID: id, Status: model.StatusApproved, DisplayName: "Styler"}
}

func vendorOriginal() *model.Product {
	return &model.Product{
		ID:            100,
		Name:          "Bulk Widget",
		Description:   "A widget",
		BasePrice:     12,
		Currency:      "USD",
		CreatedByType: model.CreatedByVendor,
		VendorID:      uintPtr(1),
		SlabPricing: []model.PricingSlab{
			{ID: 1, ProductID: 100, MinQuantity: 1, MaxQuantity: intPtr(9), Price: 10, IsActive: true},
			{ID: 2, ProductID: 100, MinQuantity: 10, Price: 8, IsActive: true},
		},
		CommissionSettings: &model.CommissionSettings{
			ID: 5, ProductID: 100, CommissionRate: 15, CommissionType: model.CommissionPercentage,
		},
	}
}

func TestCreateOriginalProductDefaults(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByID", ctx, uint(1)).Return(approvedVendor(1), nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.CreateOriginalProduct(ctx, 1, ProductInput{Name: "Widget", BasePrice: 20})
	require.NoError(t, err)

	assert.Equal(t, model.CreatedByVendor, product.CreatedByType)
	require.NotNil(t, product.VendorID)
	assert.Equal(t, uint(1), *product.VendorID)
	assert.Nil(t, product.InfluencerID)
	assert.True(t, strings.HasPrefix(product.SKU, "VND-"))
	assert.Equal(t, "USD", product.Currency)

	require.NotNil(t, product.CommissionSettings)
	assert.Equal(t, model.DefaultInfluencerRate, product.CommissionSettings.CommissionRate)
	assert.Equal(t, model.CommissionPercentage, product.CommissionSettings.CommissionType)
	assert.True(t, product.CommissionSettings.IsCommissionEnabled)

	// Inventory untracked: always reported in stock.
	assert.False(t, product.TrackInventory)
	assert.Equal(t, model.StockInStock, product.StockStatus)
}

func TestCreateOriginalProductTrackedInventory(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByID", ctx, uint(1)).Return(approvedVendor(1), nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.CreateOriginalProduct(ctx, 1, ProductInput{
		Name: "Widget", BasePrice: 20, TrackInventory: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, product.StockQuantity)
	assert.Equal(t, model.StockOutOfStock, product.StockStatus)

	product, err = svc.CreateOriginalProduct(ctx, 1, ProductInput{
		Name: "Widget", BasePrice: 20, TrackInventory: true, StockQuantity: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, product.StockQuantity)
	assert.Equal(t, model.StockInStock, product.StockStatus)
}

func TestCreateOriginalProductRejectsSuspendedVendor(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByID", ctx, uint(1)).Return(&model.Vendor{ID: 1, Status: model.StatusSuspended}, nil)

	_, err := svc.CreateOriginalProduct(ctx, 1, ProductInput{Name: "Widget", BasePrice: 20})
	require.Error(t, err)
	assert.True(t, apperr.IsPermission(err))
	store.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateOriginalProductAllowsPendingVendor(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByID", ctx, uint(1)).Return(&model.Vendor{ID: 1, Status: model.StatusPending}, nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	_, err := svc.CreateOriginalProduct(ctx, 1, ProductInput{Name: "Widget", BasePrice: 20})
	assert.NoError(t, err)
}

func TestCreateOriginalProductValidation(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByID", ctx, uint(1)).Return(approvedVendor(1), nil)

	_, err := svc.CreateOriginalProduct(ctx, 1, ProductInput{BasePrice: 20})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.CreateOriginalProduct(ctx, 1, ProductInput{Name: "Widget", BasePrice: -1})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.CreateOriginalProduct(ctx, 1, ProductInput{
		Name: "Widget", BasePrice: 20,
		SlabPricing: []model.PricingSlab{{MinQuantity: 10, MaxQuantity: intPtr(5), Price: 8}},
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateLinkedProductCopiesByValue(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	original := vendorOriginal()
	store.On("InfluencerByID", ctx, uint(2)).Return(approvedInfluencer(2), nil)
	store.On("ProductByID", ctx, uint(100)).Return(original, nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	linked, err := svc.CreateLinkedProduct(ctx, 2, 100, LinkOverrides{})
	require.NoError(t, err)

	assert.Equal(t, model.CreatedByInfluencer, linked.CreatedByType)
	require.NotNil(t, linked.OriginalProductID)
	assert.Equal(t, uint(100), *linked.OriginalProductID)
	require.NotNil(t, linked.InfluencerID)
	assert.Equal(t, uint(2), *linked.InfluencerID)
	assert.Nil(t, linked.VendorID)
	assert.Equal(t, "Bulk Widget (by Styler)", linked.Name)
	assert.True(t, strings.HasPrefix(linked.SKU, "INF-"))
	assert.False(t, linked.TrackInventory)
	assert.Equal(t, model.StockInStock, linked.StockStatus)

	// Slabs are detached duplicates.
	require.Len(t, linked.SlabPricing, 2)
	for _, slab := range linked.SlabPricing {
		assert.Zero(t, slab.ID)
		assert.Zero(t, slab.ProductID)
	}
	assert.Equal(t, 8.0, linked.SlabPricing[1].Price)

	// Commission settings are a detached copy with the original's settings
	// rate; the product-level rate falls back to the default because the
	// original carries none.
	require.NotNil(t, linked.CommissionSettings)
	assert.Zero(t, linked.CommissionSettings.ID)
	assert.Equal(t, 15.0, linked.CommissionSettings.CommissionRate)
	assert.Equal(t, model.DefaultInfluencerRate, linked.InfluencerCommissionRate)

	// Mutating the copy must not touch the original.
	linked.SlabPricing[0].Price = 1
	linked.CommissionSettings.CommissionRate = 1
	assert.Equal(t, 10.0, original.SlabPricing[0].Price)
	assert.Equal(t, 15.0, original.CommissionSettings.CommissionRate)
}

func TestCreateLinkedProductCommissionOverride(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("InfluencerByID", ctx, uint(2)).Return(approvedInfluencer(2), nil)
	store.On("ProductByID", ctx, uint(100)).Return(vendorOriginal(), nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	linked, err := svc.CreateLinkedProduct(ctx, 2, 100, LinkOverrides{
		InfluencerCommissionRate: floatPtr(22),
	})
	require.NoError(t, err)
	assert.Equal(t, 22.0, linked.InfluencerCommissionRate)
	assert.Equal(t, 22.0, linked.CommissionSettings.CommissionRate)
}

func TestCreateLinkedProductRatesResolveIndependently(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	original := vendorOriginal()
	original.InfluencerCommissionRate = 15
	original.CommissionSettings.CommissionRate = 20
	store.On("InfluencerByID", ctx, uint(2)).Return(approvedInfluencer(2), nil)
	store.On("ProductByID", ctx, uint(100)).Return(original, nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	linked, err := svc.CreateLinkedProduct(ctx, 2, 100, LinkOverrides{})
	require.NoError(t, err)
	// Each rate inherits its own counterpart, not the other's.
	assert.Equal(t, 15.0, linked.InfluencerCommissionRate)
	require.NotNil(t, linked.CommissionSettings)
	assert.Equal(t, 20.0, linked.CommissionSettings.CommissionRate)
}

func TestCreateLinkedProductCommissionFallsBackToDefault(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	original := vendorOriginal()
	original.CommissionSettings = nil
	original.InfluencerCommissionRate = 0
	store.On("InfluencerByID", ctx, uint(2)).Return(approvedInfluencer(2), nil)
	store.On("ProductByID", ctx, uint(100)).Return(original, nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	linked, err := svc.CreateLinkedProduct(ctx, 2, 100, LinkOverrides{})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultInfluencerRate, linked.InfluencerCommissionRate)
	assert.Nil(t, linked.CommissionSettings)
}

func TestCreateLinkedProductRejectsLinkedOriginal(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	alreadyLinked := &model.Product{
		ID:                200,
		CreatedByType:     model.CreatedByInfluencer,
		InfluencerID:      uintPtr(3),
		OriginalProductID: uintPtr(100),
	}
	store.On("InfluencerByID", ctx, uint(2)).Return(approvedInfluencer(2), nil)
	store.On("ProductByID", ctx, uint(200)).Return(alreadyLinked, nil)

	_, err := svc.CreateLinkedProduct(ctx, 2, 200, LinkOverrides{})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateLinkedProductMissingOriginal(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("InfluencerByID", ctx, uint(2)).Return(approvedInfluencer(2), nil)
	store.On("ProductByID", ctx, uint(999)).Return(nil, apperr.NotFound("product", uint(999)))

	_, err := svc.CreateLinkedProduct(ctx, 2, 999, LinkOverrides{})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateProductDispatchVendor(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByUser", ctx, uint(10)).Return(approvedVendor(1), nil)
	store.On("VendorByID", ctx, uint(1)).Return(approvedVendor(1), nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.CreateProduct(ctx, 10, ProductInput{Name: "Widget", BasePrice: 20})
	require.NoError(t, err)
	assert.Equal(t, model.CreatedByVendor, product.CreatedByType)
}

func TestCreateProductDispatchInfluencerStandalone(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByUser", ctx, uint(11)).Return(nil, nil)
	store.On("InfluencerByUser", ctx, uint(11)).Return(approvedInfluencer(2), nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.CreateProduct(ctx, 11, ProductInput{Name: "Merch", BasePrice: 30})
	require.NoError(t, err)
	assert.Equal(t, model.CreatedByInfluencer, product.CreatedByType)
	assert.Nil(t, product.OriginalProductID)
	// Standalone influencer products pay commission to nobody.
	assert.Nil(t, product.CommissionSettings)
}

func TestCreateProductDispatchInfluencerLinked(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByUser", ctx, uint(11)).Return(nil, nil)
	store.On("InfluencerByUser", ctx, uint(11)).Return(approvedInfluencer(2), nil)
	store.On("InfluencerByID", ctx, uint(2)).Return(approvedInfluencer(2), nil)
	store.On("ProductByID", ctx, uint(100)).Return(vendorOriginal(), nil)
	store.On("CreateProduct", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.CreateProduct(ctx, 11, ProductInput{OriginalProductID: uintPtr(100)})
	require.NoError(t, err)
	require.NotNil(t, product.OriginalProductID)
	assert.Equal(t, uint(100), *product.OriginalProductID)
}

func TestCreateProductNoSellerProfile(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("VendorByUser", ctx, uint(12)).Return(nil, nil)
	store.On("InfluencerByUser", ctx, uint(12)).Return(nil, nil)

	_, err := svc.CreateProduct(ctx, 12, ProductInput{Name: "Widget", BasePrice: 20})
	require.Error(t, err)
	assert.True(t, apperr.IsPermission(err))
}

func TestQuoteResolvesSlabPricing(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("ProductByID", ctx, uint(100)).Return(vendorOriginal(), nil)

	quote, err := svc.Quote(ctx, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, 8.0, quote.UnitPrice)
	assert.Equal(t, 80.0, quote.TotalPrice)
	assert.Equal(t, 40.0, quote.Savings)
}

func TestUpdateProductValidatesSlabs(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	product := vendorOriginal()
	product.SlabPricing[0].MinQuantity = 0

	err := svc.UpdateProduct(ctx, product)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	store.AssertNotCalled(t, "SaveProduct", mock.Anything, mock.Anything)
}

func TestDeleteProduct(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("DeleteProduct", ctx, uint(100)).Return(nil)
	assert.NoError(t, svc.DeleteProduct(ctx, 100))
}
