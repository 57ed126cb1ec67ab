package services

import (
	"context"
	"fmt"

	"github.com/gokulanand247/ecommerce/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultSize  = "One Size"
	defaultColor = "Default"
)

// CartLine is one selection in a cart: a product snapshot plus quantity and
// chosen variant.
type CartLine struct {
	Product       models.Product `json:"product"`
	Quantity      int            `json:"quantity"`
	SelectedSize  string         `json:"selectedSize"`
	SelectedColor string         `json:"selectedColor"`
}

type lineKey struct {
	productID uint
	size      string
	color     string
}

// Cart aggregates lines keyed by (product, size, color). Adding the same key
// twice merges into one line; the same product in another size or color is a
// distinct line. Order of first insertion is preserved.
type Cart struct {
	lines []*CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func normalizeVariant(p *models.Product, size, color string) (string, string) {
	if len(p.Sizes) == 0 && size == "" {
		size = defaultSize
	}
	if len(p.Colors) == 0 && color == "" {
		color = defaultColor
	}
	return size, color
}

func (c *Cart) find(key lineKey) *CartLine {
	for _, line := range c.lines {
		if line.Product.ID == key.productID && line.SelectedSize == key.size && line.SelectedColor == key.color {
			return line
		}
	}
	return nil
}

// Add puts one unit of the product into the cart, merging with an existing
// line when the variant matches.
func (c *Cart) Add(product models.Product, size, color string) {
	size, color = normalizeVariant(&product, size, color)
	if line := c.find(lineKey{product.ID, size, color}); line != nil {
		line.Quantity++
		return
	}
	c.lines = append(c.lines, &CartLine{
		Product:       product,
		Quantity:      1,
		SelectedSize:  size,
		SelectedColor: color,
	})
}

// AddQuantity is Add for a whole line at once: quantity units are merged
// into an existing matching line or start a new one.
func (c *Cart) AddQuantity(product models.Product, size, color string, quantity int) {
	if quantity <= 0 {
		return
	}
	size, color = normalizeVariant(&product, size, color)
	if line := c.find(lineKey{product.ID, size, color}); line != nil {
		line.Quantity += quantity
		return
	}
	c.lines = append(c.lines, &CartLine{
		Product:       product,
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	})
}

// SetQuantity sets a line's quantity; anything at or below zero removes the
// line.
func (c *Cart) SetQuantity(productID uint, size, color string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID, size, color)
		return
	}
	if line := c.find(lineKey{productID, size, color}); line != nil {
		line.Quantity = quantity
	}
}

// Remove deletes a line unconditionally.
func (c *Cart) Remove(productID uint, size, color string) {
	for i, line := range c.lines {
		if line.Product.ID == productID && line.SelectedSize == size && line.SelectedColor == color {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Lines() []*CartLine {
	return c.lines
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal is the sum of sale prices over all lines, before any coupon.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// TotalMRP is the sum of list prices over all lines.
func (c *Cart) TotalMRP() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Product.MRP * float64(line.Quantity)
	}
	return total
}

// Savings is how far the cart sits below list price.
func (c *Cart) Savings() float64 {
	return c.TotalMRP() - c.Subtotal()
}

// CartStore persists carts to the cart_items table so a cart survives across
// sessions and devices. Persistence is best effort: the last writer wins and
// no cross-device merge is attempted.
type CartStore struct {
	DB *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{DB: db}
}

// Save replaces the user's stored cart with the given one.
func (s *CartStore) Save(ctx context.Context, userID uint, cart *Cart) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear stored cart: %w", err)
		}
		for _, line := range cart.Lines() {
			item := models.CartItem{
				UserID:        userID,
				ProductID:     line.Product.ID,
				SelectedSize:  line.SelectedSize,
				SelectedColor: line.SelectedColor,
				Quantity:      line.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("store cart line: %w", err)
			}
		}
		return nil
	})
}

// Load rehydrates the user's cart, joining each stored line with the live
// product. Lines whose product has been deleted or hidden are dropped.
func (s *CartStore) Load(ctx context.Context, userID uint) (*Cart, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load stored cart: %w", err)
	}

	cart := NewCart()
	for _, item := range items {
		var product models.Product
		if err := s.DB.WithContext(ctx).First(&product, item.ProductID).Error; err != nil {
			continue
		}
		if !product.IsActive {
			continue
		}
		cart.lines = append(cart.lines, &CartLine{
			Product:       product,
			Quantity:      item.Quantity,
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
		})
	}
	return cart, nil
}

// SetLine upserts a single stored line; quantity at or below zero deletes it.
func (s *CartStore) SetLine(ctx context.Context, userID, productID uint, size, color string, quantity int) error {
	db := s.DB.WithContext(ctx)
	if quantity <= 0 {
		err := db.Where("user_id = ? AND product_id = ? AND selected_size = ? AND selected_color = ?",
			userID, productID, size, color).
			Delete(&models.CartItem{}).Error
		if err != nil {
			return fmt.Errorf("delete cart line: %w", err)
		}
		return nil
	}

	item := models.CartItem{
		UserID:        userID,
		ProductID:     productID,
		SelectedSize:  size,
		SelectedColor: color,
		Quantity:      quantity,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "selected_size"}, {Name: "selected_color"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("upsert cart line: %w", err)
	}
	return nil
}

// Clear removes every stored line for the user.
func (s *CartStore) Clear(ctx context.Context, userID uint) error {
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
