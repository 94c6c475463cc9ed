package pricing

import (
	"testing"
	"time"

	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func bulkProduct() *model.Product {
	return &model.Product{
		ID:        42,
		BasePrice: 12,
		Currency:  "USD",
		SlabPricing: []model.PricingSlab{
			{ID: 1, MinQuantity: 1, MaxQuantity: intPtr(9), Price: 10, IsActive: true},
			{ID: 2, MinQuantity: 10, Price: 8, IsActive: true},
		},
	}
}

func TestResolveSelectsTierByQuantity(t *testing.T) {
	now := time.Now()
	product := bulkProduct()

	quote, err := Resolve(product, 10, now)
	require.NoError(t, err)
	assert.Equal(t, 8.0, quote.UnitPrice)
	assert.Equal(t, 80.0, quote.TotalPrice)
	assert.Equal(t, 40.0, quote.Savings)
	require.NotNil(t, quote.AppliedSlab)
	assert.Equal(t, uint(2), quote.AppliedSlab.ID)

	quote, err = Resolve(product, 5, now)
	require.NoError(t, err)
	assert.Equal(t, 10.0, quote.UnitPrice)
	assert.Equal(t, 50.0, quote.TotalPrice)
	assert.Equal(t, 10.0, quote.Savings)
}

func TestResolveZeroQuantity(t *testing.T) {
	quote, err := Resolve(bulkProduct(), 0, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 12.0, quote.UnitPrice)
	assert.Equal(t, 0.0, quote.TotalPrice)
	assert.Equal(t, 0.0, quote.Savings)
	assert.Nil(t, quote.AppliedSlab)
}

func TestResolveNegativeQuantity(t *testing.T) {
	_, err := Resolve(bulkProduct(), -1, time.Now())
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestResolveNoTiersFallsBackToBasePrice(t *testing.T) {
	product := &model.Product{ID: 7, BasePrice: 25, Currency: "USD"}

	quote, err := Resolve(product, 3, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 25.0, quote.UnitPrice)
	assert.Equal(t, 75.0, quote.TotalPrice)
	assert.Equal(t, 0.0, quote.Savings)
	assert.Nil(t, quote.AppliedSlab)
}

func TestResolveIgnoresInactiveTiers(t *testing.T) {
	product := bulkProduct()
	product.SlabPricing[1].IsActive = false

	quote, err := Resolve(product, 10, time.Now())
	require.NoError(t, err)
	require.NotNil(t, quote.AppliedSlab)
	assert.Equal(t, uint(1), quote.AppliedSlab.ID)
}

func TestResolveIgnoresTiersOutsideValidityWindow(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	product := bulkProduct()
	product.SlabPricing[1].ValidUntil = &past

	quote, err := Resolve(product, 10, now)
	require.NoError(t, err)
	require.NotNil(t, quote.AppliedSlab)
	assert.Equal(t, uint(1), quote.AppliedSlab.ID)

	product.SlabPricing[1].ValidUntil = nil
	product.SlabPricing[1].ValidFrom = &future

	quote, err = Resolve(product, 10, now)
	require.NoError(t, err)
	require.NotNil(t, quote.AppliedSlab)
	assert.Equal(t, uint(1), quote.AppliedSlab.ID)
}

func TestResolveTieBreakIsDeterministic(t *testing.T) {
	now := time.Now()
	product := &model.Product{
		ID:        9,
		BasePrice: 20,
		SlabPricing: []model.PricingSlab{
			{ID: 3, MinQuantity: 5, Price: 15, IsActive: true},
			{ID: 1, MinQuantity: 5, Price: 14, IsActive: true},
			{ID: 2, MinQuantity: 5, Price: 14, IsActive: true},
		},
	}

	quote, err := Resolve(product, 6, now)
	require.NoError(t, err)
	require.NotNil(t, quote.AppliedSlab)
	// Lowest price wins the tie, then lowest ID.
	assert.Equal(t, 14.0, quote.AppliedSlab.Price)
	assert.Equal(t, uint(1), quote.AppliedSlab.ID)

	// Reordering the tiers must not change the result.
	product.SlabPricing[0], product.SlabPricing[2] = product.SlabPricing[2], product.SlabPricing[0]
	again, err := Resolve(product, 6, now)
	require.NoError(t, err)
	assert.Equal(t, quote.AppliedSlab.ID, again.AppliedSlab.ID)
}

func TestResolveSavingsNeverNegative(t *testing.T) {
	product := &model.Product{
		ID:        11,
		BasePrice: 5,
		SlabPricing: []model.PricingSlab{
			{ID: 1, MinQuantity: 1, Price: 8, IsActive: true},
		},
	}

	quote, err := Resolve(product, 4, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 8.0, quote.UnitPrice)
	assert.Equal(t, 32.0, quote.TotalPrice)
	assert.Equal(t, 0.0, quote.Savings)
}

func TestResolveUnboundedTierCoversLargeQuantities(t *testing.T) {
	product := bulkProduct()

	for _, qty := range []int{10, 100, 10000} {
		quote, err := Resolve(product, qty, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 8.0, quote.UnitPrice)
		assert.Equal(t, 8.0*float64(qty), quote.TotalPrice)
	}
}

func TestValidateSlabs(t *testing.T) {
	valid := []model.PricingSlab{
		{MinQuantity: 1, MaxQuantity: intPtr(9), Price: 10},
		{MinQuantity: 10, Price: 8},
	}
	assert.NoError(t, ValidateSlabs(valid))

	badMin := []model.PricingSlab{{MinQuantity: 0, Price: 10}}
	assert.True(t, apperr.IsValidation(ValidateSlabs(badMin)))

	badPrice := []model.PricingSlab{{MinQuantity: 1, Price: -1}}
	assert.True(t, apperr.IsValidation(ValidateSlabs(badPrice)))

	badRange := []model.PricingSlab{{MinQuantity: 10, MaxQuantity: intPtr(5), Price: 8}}
	assert.True(t, apperr.IsValidation(ValidateSlabs(badRange)))
}
