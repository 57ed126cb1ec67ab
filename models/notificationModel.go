package models

import "gorm.io/gorm"

const (
	NotificationTypeNewOrder     = "new_order"
	NotificationTypeStatusUpdate = "status_update"
)

// Notification rows with a nil SellerID are addressed to the admin dashboard.
type Notification struct {
	gorm.Model
	OrderID  uint   `json:"orderId"`
	SellerID *uint  `json:"sellerId" gorm:"index"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	IsRead   bool   `json:"isRead"`
}
