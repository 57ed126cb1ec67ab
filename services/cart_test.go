package services

import (
	"context"
	"testing"

	"github.com/gokulanand247/ecommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesIdenticalVariant(t *testing.T) {
	product := models.Product{Price: 500, MRP: 800}
	product.ID = 1

	cart := NewCart()
	cart.Add(product, "M", "Red")
	cart.Add(product, "M", "Red")

	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
	assert.Equal(t, float64(1000), cart.Subtotal())
}

func TestAddKeepsDistinctVariantsApart(t *testing.T) {
	product := models.Product{Price: 500, MRP: 800}
	product.ID = 1

	cart := NewCart()
	cart.Add(product, "M", "Red")
	cart.Add(product, "L", "Red")
	cart.Add(product, "M", "Blue")

	assert.Len(t, cart.Lines(), 3)
}

func TestVariantDefaultsForPlainProducts(t *testing.T) {
	// No declared sizes or colors: lines fall back to the catch-all variant
	// and still merge.
	product := models.Product{Price: 300, MRP: 300}
	product.ID = 7

	cart := NewCart()
	cart.Add(product, "", "")
	cart.Add(product, "", "")

	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, "One Size", cart.Lines()[0].SelectedSize)
	assert.Equal(t, "Default", cart.Lines()[0].SelectedColor)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	a := models.Product{Price: 500, MRP: 800}
	a.ID = 1
	b := models.Product{Price: 200, MRP: 250}
	b.ID = 2

	cart := NewCart()
	cart.Add(a, "M", "Red")
	cart.Add(b, "S", "Blue")

	cart.SetQuantity(a.ID, "M", "Red", 0)
	require.Len(t, cart.Lines(), 1)
	assert.Equal(t, float64(200), cart.Subtotal())

	cart.SetQuantity(b.ID, "S", "Blue", 4)
	assert.Equal(t, float64(800), cart.Subtotal())
}

func TestRemoveAndTotals(t *testing.T) {
	a := models.Product{Price: 500, MRP: 800}
	a.ID = 1
	b := models.Product{Price: 200, MRP: 250}
	b.ID = 2

	cart := NewCart()
	cart.Add(a, "M", "Red")
	cart.Add(b, "S", "Blue")

	assert.Equal(t, float64(700), cart.Subtotal())
	assert.Equal(t, float64(1050), cart.TotalMRP())
	assert.Equal(t, float64(350), cart.Savings())

	cart.Remove(b.ID, "S", "Blue")
	assert.Equal(t, float64(500), cart.Subtotal())
	assert.Equal(t, float64(300), cart.Savings())
}

func TestCartStoreRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := NewCartStore(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Kurta", 600, 900, 5)

	cart := NewCart()
	cart.Add(product, "M", "Red")
	cart.Add(product, "M", "Red")
	cart.Add(product, "L", "Blue")

	require.NoError(t, store.Save(ctx, 1, cart))

	loaded, err := store.Load(ctx, 1)
	require.NoError(t, err)
	require.Len(t, loaded.Lines(), 2)
	assert.Equal(t, 2, loaded.Lines()[0].Quantity)
	assert.Equal(t, float64(1800), loaded.Subtotal())

	// Save replaces wholesale.
	cart.SetQuantity(product.ID, "M", "Red", 0)
	require.NoError(t, store.Save(ctx, 1, cart))

	loaded, err = store.Load(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, loaded.Lines(), 1)
}

func TestCartStoreDropsVanishedProducts(t *testing.T) {
	db := setupTestDB(t)
	store := NewCartStore(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Saree", 1200, 2000, 5)

	cart := NewCart()
	cart.Add(product, "M", "Red")
	require.NoError(t, store.Save(ctx, 1, cart))

	require.NoError(t, db.Unscoped().Delete(&models.Product{}, product.ID).Error)

	loaded, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCartStoreSetLine(t *testing.T) {
	db := setupTestDB(t)
	store := NewCartStore(db)
	ctx := context.Background()

	product := createTestProduct(t, db, "Lehenga", 2500, 4000, 3)

	require.NoError(t, store.SetLine(ctx, 1, product.ID, "M", "Red", 1))
	require.NoError(t, store.SetLine(ctx, 1, product.ID, "M", "Red", 3))

	loaded, err := store.Load(ctx, 1)
	require.NoError(t, err)
	require.Len(t, loaded.Lines(), 1)
	assert.Equal(t, 3, loaded.Lines()[0].Quantity)

	require.NoError(t, store.SetLine(ctx, 1, product.ID, "M", "Red", 0))
	loaded, err = store.Load(ctx, 1)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}
