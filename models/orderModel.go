package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusProcessing     = "processing"
	OrderStatusShipped        = "shipped"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
	OrderStatusReturned       = "returned"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

type Order struct {
	gorm.Model
	UserID           uint      `json:"userId" gorm:"index"`
	Subtotal         float64   `json:"subtotal"`
	DiscountAmount   float64   `json:"discountAmount"`
	TotalAmount      float64   `json:"totalAmount"`
	CouponID         *uint     `json:"couponId"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"paymentStatus"`
	PaymentID        string    `json:"paymentId"`
	TrackingNumber   string    `json:"trackingNumber"`
	ExpectedDelivery time.Time `json:"expectedDelivery"`

	// Shipping address snapshot, copied from the chosen Address at order time.
	ShipName    string `json:"shipName"`
	ShipPhone   string `json:"shipPhone"`
	ShipStreet  string `json:"shipStreet"`
	ShipCity    string `json:"shipCity"`
	ShipState   string `json:"shipState"`
	ShipPincode string `json:"shipPincode"`

	OrderItems []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Tracking   []OrderTracking `json:"tracking" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem captures price, mrp and variant at order time and is never
// recomputed, even if the product changes later.
type OrderItem struct {
	gorm.Model
	OrderID       uint    `json:"orderId" gorm:"index"`
	ProductID     uint    `json:"productId"`
	SellerID      *uint   `json:"sellerId" gorm:"index"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"imageUrl"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	MRP           float64 `json:"mrp"`
	SelectedSize  string  `json:"selectedSize"`
	SelectedColor string  `json:"selectedColor"`
}

// OrderTracking is an append-only event log; one row per status change.
type OrderTracking struct {
	gorm.Model
	OrderID  uint   `json:"orderId" gorm:"index"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Location string `json:"location"`
}
