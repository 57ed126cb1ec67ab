package models

import (
	"time"

	"gorm.io/gorm"
)

// Deal is an admin-scheduled, time-boxed percentage discount on a single
// product. The sale price is always recomputed from the live product, never
// stored here.
type Deal struct {
	gorm.Model
	ProductID          uint      `json:"productId" gorm:"index"`
	Product            Product   `json:"product" gorm:"foreignKey:ProductID"`
	DiscountPercentage float64   `json:"discountPercentage"`
	StartsAt           time.Time `json:"startsAt"`
	EndsAt             time.Time `json:"endsAt"`
	IsActive           bool      `json:"isActive" gorm:"default:true"`
	SortOrder          int       `json:"sortOrder"`
}
