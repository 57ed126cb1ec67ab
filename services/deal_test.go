package services

import (
	"context"
	"testing"
	"time"

	"github.com/gokulanand247/ecommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSalePrice(t *testing.T) {
	product := models.Product{Price: 1000, MRP: 1500}
	product.ID = 1
	deal := models.Deal{
		ProductID:          1,
		DiscountPercentage: 30,
		StartsAt:           time.Now().Add(-time.Hour),
		EndsAt:             time.Now().Add(time.Hour),
		IsActive:           true,
	}

	view := Resolve(&deal, &product)
	assert.Equal(t, float64(700), view.SalePrice)
	assert.Equal(t, float64(1500), view.OriginalPrice)
	assert.Positive(t, view.SecondsRemaining)
}

func TestResolveIsIdempotent(t *testing.T) {
	product := models.Product{Price: 799, MRP: 999}
	deal := models.Deal{DiscountPercentage: 15, EndsAt: time.Now().Add(time.Hour), IsActive: true}

	first := Resolve(&deal, &product)
	second := Resolve(&deal, &product)
	assert.Equal(t, first.SalePrice, second.SalePrice)
}

func TestDealActiveWindowInclusive(t *testing.T) {
	now := time.Now()
	deal := models.Deal{StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour), IsActive: true}

	assert.True(t, DealActiveAt(&deal, now))
	assert.True(t, DealActiveAt(&deal, deal.StartsAt))
	assert.True(t, DealActiveAt(&deal, deal.EndsAt))
	assert.False(t, DealActiveAt(&deal, deal.StartsAt.Add(-time.Second)))
	assert.False(t, DealActiveAt(&deal, deal.EndsAt.Add(time.Second)))

	deal.IsActive = false
	assert.False(t, DealActiveAt(&deal, now))
}

func TestActiveDealsExcludesExpiredAndHidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDealService(db)

	live := createTestProduct(t, db, "Summer Dress", 1000, 1500, 10)
	hidden := createTestProduct(t, db, "Hidden Dress", 800, 1200, 10)
	require.NoError(t, db.Model(&hidden).Update("is_active", false).Error)

	deals := []models.Deal{
		{ProductID: live.ID, DiscountPercentage: 30, StartsAt: time.Now().Add(-time.Hour), EndsAt: time.Now().Add(time.Hour), IsActive: true, SortOrder: 2},
		{ProductID: live.ID, DiscountPercentage: 50, StartsAt: time.Now().Add(-48 * time.Hour), EndsAt: time.Now().Add(-24 * time.Hour), IsActive: true},
		{ProductID: hidden.ID, DiscountPercentage: 10, StartsAt: time.Now().Add(-time.Hour), EndsAt: time.Now().Add(time.Hour), IsActive: true, SortOrder: 1},
	}
	for i := range deals {
		require.NoError(t, db.Create(&deals[i]).Error)
	}

	views, err := svc.ActiveDeals(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, live.ID, views[0].ProductID)
	assert.Equal(t, float64(700), views[0].SalePrice)
}
