package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gokulanand247/ecommerce/models"
	"gorm.io/gorm"
)

// SalePriceView is what a deal looks like on the storefront. The sale price
// is recomputed from the live product price and the original price is the
// product's own MRP; nothing here is a stored snapshot.
type SalePriceView struct {
	DealID             uint      `json:"dealId"`
	ProductID          uint      `json:"productId"`
	Name               string    `json:"name"`
	SalePrice          float64   `json:"salePrice"`
	OriginalPrice      float64   `json:"originalPrice"`
	DiscountPercentage float64   `json:"discountPercentage"`
	EndsAt             time.Time `json:"endsAt"`
	SecondsRemaining   int64     `json:"secondsRemaining"`
}

type DealService struct {
	DB *gorm.DB
}

func NewDealService(db *gorm.DB) *DealService {
	return &DealService{DB: db}
}

// DealActiveAt reports whether the deal window contains t. Both ends of the
// window are inclusive.
func DealActiveAt(deal *models.Deal, t time.Time) bool {
	return deal.IsActive && !t.Before(deal.StartsAt) && !t.After(deal.EndsAt)
}

// Resolve computes the effective sale price of a product under a deal,
// rounded to whole rupees.
func Resolve(deal *models.Deal, product *models.Product) SalePriceView {
	sale := math.Round(product.Price * (1 - deal.DiscountPercentage/100))
	remaining := int64(time.Until(deal.EndsAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return SalePriceView{
		DealID:             deal.ID,
		ProductID:          product.ID,
		Name:               product.Name,
		SalePrice:          sale,
		OriginalPrice:      product.MRP,
		DiscountPercentage: deal.DiscountPercentage,
		EndsAt:             deal.EndsAt,
		SecondsRemaining:   remaining,
	}
}

// ActiveDeals returns today's deals whose window contains the current time,
// ordered for display. Expired deals drop out on the next fetch; clients poll.
func (s *DealService) ActiveDeals(ctx context.Context) ([]SalePriceView, error) {
	now := time.Now()

	var deals []models.Deal
	err := s.DB.WithContext(ctx).
		Preload("Product").
		Where("is_active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("sort_order ASC").
		Find(&deals).Error
	if err != nil {
		return nil, fmt.Errorf("list active deals: %w", err)
	}

	views := make([]SalePriceView, 0, len(deals))
	for i := range deals {
		if !deals[i].Product.IsActive {
			continue
		}
		views = append(views, Resolve(&deals[i], &deals[i].Product))
	}
	return views, nil
}
