package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gokulanand247/ecommerce/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Seller{},
		&models.Product{},
		&models.CartItem{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Deal{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderTracking{},
		&models.Notification{},
	))
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price, mrp float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:     name,
		Price:    price,
		MRP:      mrp,
		Category: "dresses",
		Sizes:    datatypes.JSONSlice[string]{"S", "M", "L"},
		Colors:   datatypes.JSONSlice[string]{"Red", "Blue"},
		Stock:    stock,
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	address := models.Address{
		UserID:    userID,
		Name:      "Asha Rao",
		Phone:     "9876543210",
		Street:    "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
		IsDefault: true,
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) models.Coupon {
	t.Helper()
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = time.Now().Add(-time.Hour)
	}
	if coupon.ValidUntil.IsZero() {
		coupon.ValidUntil = time.Now().Add(time.Hour)
	}
	coupon.IsActive = true
	require.NoError(t, db.Create(&coupon).Error)
	return coupon
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
