package services

import (
	"context"
	"testing"
	"time"

	"github.com/gokulanand247/ecommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePercentageCouponWithCap(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	createTestCoupon(t, db, models.Coupon{
		Code:              "SAVE20",
		DiscountType:      models.DiscountTypePercentage,
		DiscountValue:     20,
		MinOrderAmount:    500,
		MaxDiscountAmount: floatPtr(200),
	})

	app, err := svc.Evaluate(context.Background(), "save20", 1000)
	require.NoError(t, err)
	assert.Equal(t, float64(200), app.DiscountAmount)
	assert.Equal(t, "SAVE20", app.Code)

	// Cap applies once the raw percentage exceeds it.
	app, err = svc.Evaluate(context.Background(), "SAVE20", 5000)
	require.NoError(t, err)
	assert.Equal(t, float64(200), app.DiscountAmount)
}

func TestEvaluateFixedCouponMinOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	createTestCoupon(t, db, models.Coupon{
		Code:           "FLAT100",
		DiscountType:   models.DiscountTypeFixed,
		DiscountValue:  100,
		MinOrderAmount: 300,
	})

	_, err := svc.Evaluate(context.Background(), "FLAT100", 250)
	require.ErrorIs(t, err, ErrCouponMinOrder)
	assert.Contains(t, err.Error(), "minimum order amount of ₹300 required")

	app, err := svc.Evaluate(context.Background(), "FLAT100", 300)
	require.NoError(t, err)
	assert.Equal(t, float64(100), app.DiscountAmount)
}

func TestEvaluateUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	_, err := svc.Evaluate(context.Background(), "NOPE", 1000)
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestEvaluateInactiveCoupon(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	coupon := createTestCoupon(t, db, models.Coupon{
		Code:          "HIDDEN",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
	})
	require.NoError(t, db.Model(&coupon).Update("is_active", false).Error)

	_, err := svc.Evaluate(context.Background(), "HIDDEN", 1000)
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestEvaluateExpiredCoupon(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	createTestCoupon(t, db, models.Coupon{
		Code:          "OLD",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
		ValidFrom:     time.Now().Add(-48 * time.Hour),
		ValidUntil:    time.Now().Add(-24 * time.Hour),
	})
	createTestCoupon(t, db, models.Coupon{
		Code:          "SOON",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
		ValidFrom:     time.Now().Add(24 * time.Hour),
		ValidUntil:    time.Now().Add(48 * time.Hour),
	})

	_, err := svc.Evaluate(context.Background(), "OLD", 1000)
	assert.ErrorIs(t, err, ErrCouponExpired)

	_, err = svc.Evaluate(context.Background(), "SOON", 1000)
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestEvaluateUsageLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	coupon := createTestCoupon(t, db, models.Coupon{
		Code:          "ONCE",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
		UsageLimit:    intPtr(1),
	})

	_, err := svc.Evaluate(context.Background(), "ONCE", 1000)
	require.NoError(t, err)

	require.NoError(t, db.Model(&coupon).Update("usage_count", 1).Error)

	_, err = svc.Evaluate(context.Background(), "ONCE", 1000)
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	createTestCoupon(t, db, models.Coupon{
		Code:          "BIGFLAT",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 500,
	})

	app, err := svc.Evaluate(context.Background(), "BIGFLAT", 200)
	require.NoError(t, err)
	assert.Equal(t, float64(200), app.DiscountAmount)
	assert.GreaterOrEqual(t, app.DiscountAmount, float64(0))
}

func TestEvaluateHasNoSideEffects(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	coupon := createTestCoupon(t, db, models.Coupon{
		Code:          "PURE",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
		UsageLimit:    intPtr(10),
	})

	for i := 0; i < 3; i++ {
		_, err := svc.Evaluate(context.Background(), "PURE", 1000)
		require.NoError(t, err)
	}

	var reloaded models.Coupon
	require.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 0, reloaded.UsageCount)
}

func TestStoredCodeIsNormalizedOnSave(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	// Codes typed in lower or mixed case are stored canonically, so the
	// coupon stays redeemable by its own code.
	coupon := createTestCoupon(t, db, models.Coupon{
		Code:          "  diwali50 ",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
	})

	var stored models.Coupon
	require.NoError(t, db.First(&stored, coupon.ID).Error)
	assert.Equal(t, "DIWALI50", stored.Code)

	app, err := svc.Evaluate(context.Background(), "diwali50", 1000)
	require.NoError(t, err)
	assert.Equal(t, "DIWALI50", app.Code)
	assert.Equal(t, float64(50), app.DiscountAmount)
}

func TestActiveCouponsSkipsNotYetStarted(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCouponService(db)

	createTestCoupon(t, db, models.Coupon{
		Code:          "NOW",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
	})
	createTestCoupon(t, db, models.Coupon{
		Code:          "LATER",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
		ValidFrom:     time.Now().Add(24 * time.Hour),
		ValidUntil:    time.Now().Add(48 * time.Hour),
	})
	createTestCoupon(t, db, models.Coupon{
		Code:          "GONE",
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 50,
		ValidFrom:     time.Now().Add(-48 * time.Hour),
		ValidUntil:    time.Now().Add(-24 * time.Hour),
	})

	coupons, err := svc.ActiveCoupons(context.Background())
	require.NoError(t, err)
	require.Len(t, coupons, 1)
	assert.Equal(t, "NOW", coupons[0].Code)
}
