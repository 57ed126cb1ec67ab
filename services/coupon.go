package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gokulanand247/ecommerce/models"
	"gorm.io/gorm"
)

// CouponApplication is the result of a successful coupon evaluation. It is a
// pure computation; the usage counter is only touched at order creation.
type CouponApplication struct {
	CouponID       uint    `json:"couponId"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	Message        string  `json:"message"`
}

type CouponService struct {
	DB *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{DB: db}
}

// Evaluate validates a coupon code against an order subtotal and returns the
// discount it would grant. Discounts are whole rupees, never negative and
// never more than the subtotal.
func (s *CouponService) Evaluate(ctx context.Context, code string, subtotal float64) (*CouponApplication, error) {
	return s.evaluateWith(s.DB.WithContext(ctx), code, subtotal)
}

func (s *CouponService) evaluateWith(db *gorm.DB, code string, subtotal float64) (*CouponApplication, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrCouponInvalid
	}

	var coupon models.Coupon
	if err := db.Where("code = ? AND is_active = ?", code, true).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponInvalid
		}
		return nil, fmt.Errorf("look up coupon: %w", err)
	}

	now := time.Now()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return nil, ErrCouponExpired
	}

	if subtotal < coupon.MinOrderAmount {
		return nil, fmt.Errorf("%w: minimum order amount of ₹%.0f required", ErrCouponMinOrder, coupon.MinOrderAmount)
	}

	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return nil, ErrCouponExhausted
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountTypeFixed:
		discount = coupon.DiscountValue
	case models.DiscountTypePercentage:
		discount = math.Round(subtotal * coupon.DiscountValue / 100)
		if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
			discount = *coupon.MaxDiscountAmount
		}
	default:
		return nil, ErrCouponInvalid
	}

	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}

	return &CouponApplication{
		CouponID:       coupon.ID,
		Code:           coupon.Code,
		DiscountAmount: discount,
		Message:        fmt.Sprintf("Coupon applied! You saved ₹%.0f", discount),
	}, nil
}

// ActiveCoupons lists coupons currently usable by shoppers. A coupon whose
// window has not opened yet is as unusable as an expired one.
func (s *CouponService) ActiveCoupons(ctx context.Context) ([]models.Coupon, error) {
	now := time.Now()
	var coupons []models.Coupon
	err := s.DB.WithContext(ctx).
		Where("is_active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Order("created_at DESC").
		Find(&coupons).Error
	if err != nil {
		return nil, fmt.Errorf("list active coupons: %w", err)
	}
	return coupons, nil
}
