package services

import (
	"context"
	"testing"

	"github.com/gokulanand247/ecommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderInvariants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	address := createTestAddress(t, db, 1)
	a := createTestProduct(t, db, "Dress A", 500, 800, 10)
	b := createTestProduct(t, db, "Dress B", 700, 900, 10)

	createTestCoupon(t, db, models.Coupon{
		Code:           "FLAT200",
		DiscountType:   models.DiscountTypeFixed,
		DiscountValue:  200,
		MinOrderAmount: 500,
	})

	cart := NewCart()
	cart.Add(a, "M", "Red")
	cart.Add(b, "L", "Blue")

	order, err := svc.CreateOrder(ctx, 1, cart, address.ID, "FLAT200")
	require.NoError(t, err)

	assert.Equal(t, float64(1200), order.Subtotal)
	assert.Equal(t, float64(200), order.DiscountAmount)
	assert.Equal(t, float64(1000), order.TotalAmount)
	assert.Equal(t, order.Subtotal-order.DiscountAmount, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "Bengaluru", order.ShipCity)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 2)

	var tracking []models.OrderTracking
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&tracking).Error)
	require.Len(t, tracking, 1)
	assert.Equal(t, models.OrderStatusPending, tracking[0].Status)
	assert.Equal(t, "Order placed successfully", tracking[0].Message)
}

func TestCreateOrderSnapshotsPriceAndVariant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	address := createTestAddress(t, db, 1)
	product := createTestProduct(t, db, "Dress", 500, 800, 10)

	cart := NewCart()
	cart.Add(product, "M", "Red")

	order, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	require.NoError(t, err)

	// A later price edit must not touch the order item.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]any{"price": 900, "mrp": 1200}).Error)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	assert.Equal(t, float64(500), item.Price)
	assert.Equal(t, float64(800), item.MRP)
	assert.Equal(t, "M", item.SelectedSize)
	assert.Equal(t, "Red", item.SelectedColor)
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	address := createTestAddress(t, db, 1)
	product := createTestProduct(t, db, "Dress", 500, 800, 3)

	cart := NewCart()
	cart.Add(product, "M", "Red")
	cart.Add(product, "M", "Red")

	_, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	address := createTestAddress(t, db, 1)
	plenty := createTestProduct(t, db, "Plenty", 500, 800, 10)
	scarce := createTestProduct(t, db, "Scarce", 700, 900, 1)

	cart := NewCart()
	cart.Add(plenty, "M", "Red")
	cart.Add(scarce, "M", "Red")
	cart.SetQuantity(scarce.ID, "M", "Red", 2)

	_, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed: no orders, no stock movement.
	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, plenty.ID).Error)
	assert.Equal(t, 10, reloaded.Stock)
}

func TestCreateOrderRequiresVariantSelection(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	address := createTestAddress(t, db, 1)
	product := createTestProduct(t, db, "Dress", 500, 800, 10)

	cart := NewCart()
	cart.Add(product, "", "")

	_, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	assert.ErrorIs(t, err, ErrVariantRequired)
}

func TestCreateOrderRejectsEmptyCartAndForeignAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 1, NewCart(), 1, "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	otherUsers := createTestAddress(t, db, 2)
	product := createTestProduct(t, db, "Dress", 500, 800, 10)
	cart := NewCart()
	cart.Add(product, "M", "Red")

	_, err = svc.CreateOrder(ctx, 1, cart, otherUsers.ID, "")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestCreateOrderCouponUsageCountsAndLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	address := createTestAddress(t, db, 1)
	product := createTestProduct(t, db, "Dress", 500, 800, 10)

	coupon := createTestCoupon(t, db, models.Coupon{
		Code:          "ONCE",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
		UsageLimit:    intPtr(1),
	})

	cart := NewCart()
	cart.Add(product, "M", "Red")

	order, err := svc.CreateOrder(ctx, 1, cart, address.ID, "ONCE")
	require.NoError(t, err)
	assert.Equal(t, float64(50), order.DiscountAmount)

	var reloaded models.Coupon
	require.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsageCount)

	var usage models.CouponUsage
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&usage).Error)
	assert.Equal(t, coupon.ID, usage.CouponID)

	// Second redemption hits the limit and the whole order rolls back.
	second := NewCart()
	second.Add(product, "M", "Red")
	_, err = svc.CreateOrder(ctx, 1, second, address.ID, "ONCE")
	require.ErrorIs(t, err, ErrCouponExhausted)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)

	require.NoError(t, db.First(&product, product.ID).Error)
	assert.Equal(t, 9, product.Stock)
}

func TestCreateOrderNotifiesSellers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	seller := models.Seller{Username: "shop1", ShopName: "Shop One"}
	require.NoError(t, db.Create(&seller).Error)

	address := createTestAddress(t, db, 1)
	product := createTestProduct(t, db, "Dress", 500, 800, 10)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("seller_id", seller.ID).Error)
	require.NoError(t, db.First(&product, product.ID).Error)

	cart := NewCart()
	cart.Add(product, "M", "Red")

	order, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	require.NoError(t, err)

	var sellerNotes []models.Notification
	require.NoError(t, db.Where("seller_id = ?", seller.ID).Find(&sellerNotes).Error)
	require.Len(t, sellerNotes, 1)
	assert.Equal(t, models.NotificationTypeNewOrder, sellerNotes[0].Type)

	var adminNotes []models.Notification
	require.NoError(t, db.Where("seller_id IS NULL").Find(&adminNotes).Error)
	assert.Len(t, adminNotes, 1)

	var item models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&item).Error)
	require.NotNil(t, item.SellerID)
	assert.Equal(t, seller.ID, *item.SellerID)
}

func TestUpdateStatusAppendsTracking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	address := createTestAddress(t, db, 1)
	product := createTestProduct(t, db, "Dress", 500, 800, 10)

	cart := NewCart()
	cart.Add(product, "M", "Red")
	order, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusShipped, reloaded.Status)

	var tracking []models.OrderTracking
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&tracking).Error)
	require.Len(t, tracking, 2)
	assert.Equal(t, "Order has been shipped", tracking[1].Message)

	err = svc.UpdateStatus(ctx, order.ID, "teleported")
	assert.Error(t, err)
}

func TestSellerOrders(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	seller := models.Seller{Username: "shop1", ShopName: "Shop One"}
	require.NoError(t, db.Create(&seller).Error)
	other := models.Seller{Username: "shop2", ShopName: "Shop Two"}
	require.NoError(t, db.Create(&other).Error)

	address := createTestAddress(t, db, 1)
	mine := createTestProduct(t, db, "Mine", 500, 800, 10)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", mine.ID).Update("seller_id", seller.ID).Error)
	require.NoError(t, db.First(&mine, mine.ID).Error)
	theirs := createTestProduct(t, db, "Theirs", 300, 400, 10)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", theirs.ID).Update("seller_id", other.ID).Error)
	require.NoError(t, db.First(&theirs, theirs.ID).Error)

	cart := NewCart()
	cart.Add(mine, "M", "Red")
	cart.Add(theirs, "M", "Red")
	_, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	require.NoError(t, err)

	lines, err := svc.SellerOrders(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Mine", lines[0].Name)
	assert.Equal(t, models.OrderStatusPending, lines[0].OrderStatus)
	assert.Equal(t, "Bengaluru", lines[0].ShipCity)
}

func TestUpdateStatusNotifiesSellers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	seller := models.Seller{Username: "shop1", ShopName: "Shop One"}
	require.NoError(t, db.Create(&seller).Error)

	address := createTestAddress(t, db, 1)
	product := createTestProduct(t, db, "Dress", 500, 800, 10)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("seller_id", seller.ID).Error)
	require.NoError(t, db.First(&product, product.ID).Error)

	cart := NewCart()
	cart.Add(product, "M", "Red")
	order, err := svc.CreateOrder(ctx, 1, cart, address.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderStatusShipped))

	var notes []models.Notification
	require.NoError(t, db.Where("seller_id = ? AND type = ?", seller.ID, models.NotificationTypeStatusUpdate).
		Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, order.ID, notes[0].OrderID)
	assert.Contains(t, notes[0].Message, "shipped")
}
