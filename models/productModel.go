package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string                      `json:"name" binding:"required"`
	Description string                      `json:"description"`
	Price       float64                     `json:"price" binding:"required"`
	MRP         float64                     `json:"mrp" binding:"required"`
	Discount    int                         `json:"discount"`
	Category    string                      `json:"category" binding:"required"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Sizes       datatypes.JSONSlice[string] `json:"sizes"`
	Colors      datatypes.JSONSlice[string] `json:"colors"`
	Stock       int                         `json:"stock"`
	IsActive    bool                        `json:"isActive" gorm:"default:true"`
	SellerID    *uint                       `json:"sellerId" gorm:"index"`
}

// RequiresVariant reports whether a size and color must be chosen before the
// product can be ordered.
func (p *Product) RequiresVariant() bool {
	return len(p.Sizes) > 0 || len(p.Colors) > 0
}
