package models

import "time"

// CartItem is the persisted form of one cart line. A user's cart is keyed by
// (product, size, color); the same product in a different size or color is a
// separate row. Deletes are hard so the unique key can be reused.
type CartItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UserID        uint      `json:"userId" gorm:"index:idx_cart_line,unique"`
	ProductID     uint      `json:"productId" gorm:"index:idx_cart_line,unique"`
	SelectedSize  string    `json:"selectedSize" gorm:"index:idx_cart_line,unique"`
	SelectedColor string    `json:"selectedColor" gorm:"index:idx_cart_line,unique"`
	Quantity      int       `json:"quantity"`
}
