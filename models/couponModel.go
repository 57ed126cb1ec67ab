package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

type Coupon struct {
	gorm.Model
	Code              string    `json:"code" gorm:"uniqueIndex"`
	Description       string    `json:"description"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     float64   `json:"discountValue"`
	MinOrderAmount    float64   `json:"minOrderAmount"`
	MaxDiscountAmount *float64  `json:"maxDiscountAmount"`
	ValidFrom         time.Time `json:"validFrom"`
	ValidUntil        time.Time `json:"validUntil"`
	UsageLimit        *int      `json:"usageLimit"`
	UsageCount        int       `json:"usageCount"`
	IsActive          bool      `json:"isActive" gorm:"default:true"`
}

// BeforeSave keeps stored codes in the same canonical form redemption
// lookups use, so a code always matches itself regardless of how it was
// typed and the unique index catches case-variant duplicates.
func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return nil
}

type CouponUsage struct {
	gorm.Model
	CouponID       uint    `json:"couponId" gorm:"index"`
	UserID         uint    `json:"userId" gorm:"index"`
	OrderID        uint    `json:"orderId"`
	DiscountAmount float64 `json:"discountAmount"`
}
