package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gokulanand247/ecommerce/models"
	"gorm.io/gorm"
)

const expectedDeliveryDays = 7

// statusMessages mirrors what shoppers see on the tracking timeline.
var statusMessages = map[string]string{
	models.OrderStatusPending:        "Order is pending confirmation",
	models.OrderStatusConfirmed:      "Order confirmed and being prepared",
	models.OrderStatusProcessing:     "Order is being processed",
	models.OrderStatusShipped:        "Order has been shipped",
	models.OrderStatusOutForDelivery: "Order is out for delivery",
	models.OrderStatusDelivered:      "Order has been delivered",
	models.OrderStatusCancelled:      "Order has been cancelled",
	models.OrderStatusReturned:       "Order has been returned",
}

type OrderService struct {
	DB      *gorm.DB
	Coupons *CouponService
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Coupons: NewCouponService(db)}
}

// CreateOrder turns a cart into a persisted order. The order row, its items,
// the first tracking event, coupon usage and the stock decrement commit or
// roll back as one transaction. Stock can never go below zero: the decrement
// is guarded by `stock >= quantity`, so a concurrent checkout of the last
// unit fails the whole transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, cart *Cart, addressID uint, couponCode string) (*models.Order, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	var created *models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAddressNotFound
			}
			return fmt.Errorf("load address: %w", err)
		}

		var subtotal float64
		items := make([]models.OrderItem, 0, len(cart.Lines()))
		sellerIDs := make(map[uint]bool)

		for _, line := range cart.Lines() {
			var product models.Product
			if err := tx.First(&product, line.Product.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.Product.Name)
				}
				return fmt.Errorf("load product %d: %w", line.Product.ID, err)
			}
			if !product.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
			}
			if product.RequiresVariant() && (line.SelectedSize == "" || line.SelectedColor == "") {
				return fmt.Errorf("%w: %s", ErrVariantRequired, product.Name)
			}
			if product.Stock < line.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			imageURL := ""
			if len(product.Images) > 0 {
				imageURL = product.Images[0]
			}

			// Price and mrp are snapshotted here; later product edits must
			// never change an existing order.
			items = append(items, models.OrderItem{
				ProductID:     product.ID,
				SellerID:      product.SellerID,
				Name:          product.Name,
				ImageURL:      imageURL,
				Quantity:      line.Quantity,
				Price:         product.Price,
				MRP:           product.MRP,
				SelectedSize:  line.SelectedSize,
				SelectedColor: line.SelectedColor,
			})
			subtotal += product.Price * float64(line.Quantity)
			if product.SellerID != nil {
				sellerIDs[*product.SellerID] = true
			}
		}

		var discount float64
		var couponID *uint
		var application *CouponApplication
		if couponCode != "" {
			app, err := s.Coupons.evaluateWith(tx, couponCode, subtotal)
			if err != nil {
				return err
			}
			application = app
			discount = app.DiscountAmount
			couponID = &app.CouponID
		}

		order := models.Order{
			UserID:           userID,
			Subtotal:         subtotal,
			DiscountAmount:   discount,
			TotalAmount:      subtotal - discount,
			CouponID:         couponID,
			Status:           models.OrderStatusPending,
			PaymentStatus:    models.PaymentStatusPending,
			ExpectedDelivery: time.Now().AddDate(0, 0, expectedDeliveryDays),
			ShipName:         address.Name,
			ShipPhone:        address.Phone,
			ShipStreet:       address.Street,
			ShipCity:         address.City,
			ShipState:        address.State,
			ShipPincode:      address.Pincode,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
		}

		tracking := models.OrderTracking{
			OrderID: order.ID,
			Status:  models.OrderStatusPending,
			Message: "Order placed successfully",
		}
		if err := tx.Create(&tracking).Error; err != nil {
			return fmt.Errorf("create tracking event: %w", err)
		}

		if application != nil {
			usage := models.CouponUsage{
				CouponID:       application.CouponID,
				UserID:         userID,
				OrderID:        order.ID,
				DiscountAmount: discount,
			}
			if err := tx.Create(&usage).Error; err != nil {
				return fmt.Errorf("record coupon usage: %w", err)
			}
			// The increment is conditional on the limit; if a concurrent
			// order exhausted the coupon first, this order fails at commit
			// time rather than over-redeeming.
			res := tx.Model(&models.Coupon{}).
				Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", application.CouponID).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
			if res.Error != nil {
				return fmt.Errorf("increment coupon usage: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrCouponExhausted
			}
		}

		for _, item := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Name)
			}
		}

		orderMsg := fmt.Sprintf("New order #%d received", order.ID)
		for sellerID := range sellerIDs {
			id := sellerID
			notification := models.Notification{
				OrderID:  order.ID,
				SellerID: &id,
				Type:     models.NotificationTypeNewOrder,
				Message:  orderMsg,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return fmt.Errorf("create seller notification: %w", err)
			}
		}
		adminNotification := models.Notification{
			OrderID: order.ID,
			Type:    models.NotificationTypeNewOrder,
			Message: orderMsg,
		}
		if err := tx.Create(&adminNotification).Error; err != nil {
			return fmt.Errorf("create admin notification: %w", err)
		}

		order.OrderItems = items
		order.Tracking = []models.OrderTracking{tracking}
		created = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetOrder loads an order with its items and tracking timeline, scoped to
// the owning user.
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("OrderItems").
		Preload("Tracking", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}

// ListUserOrders returns a user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status and appends the matching
// tracking event.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	message, ok := statusMessages[status]
	if !ok {
		return fmt.Errorf("unknown order status %q", status)
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
		if res.Error != nil {
			return fmt.Errorf("update order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}

		tracking := models.OrderTracking{
			OrderID:  orderID,
			Status:   status,
			Message:  message,
			Location: "Processing Center",
		}
		if err := tx.Create(&tracking).Error; err != nil {
			return fmt.Errorf("create tracking event: %w", err)
		}

		var sellerIDs []uint
		err := tx.Model(&models.OrderItem{}).
			Where("order_id = ? AND seller_id IS NOT NULL", orderID).
			Distinct().
			Pluck("seller_id", &sellerIDs).Error
		if err != nil {
			return fmt.Errorf("load order sellers: %w", err)
		}
		for _, sellerID := range sellerIDs {
			id := sellerID
			notification := models.Notification{
				OrderID:  orderID,
				SellerID: &id,
				Type:     models.NotificationTypeStatusUpdate,
				Message:  fmt.Sprintf("Order #%d is now %s", orderID, status),
			}
			if err := tx.Create(&notification).Error; err != nil {
				return fmt.Errorf("create status notification: %w", err)
			}
		}
		return nil
	})
}

// SellerOrderLine is one sold item with its order context, for the seller
// dashboard.
type SellerOrderLine struct {
	models.OrderItem
	OrderStatus   string    `json:"orderStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	OrderedAt     time.Time `json:"orderedAt"`
	ShipCity      string    `json:"shipCity"`
	ShipState     string    `json:"shipState"`
}

// SellerOrders lists order items belonging to one seller's products, newest
// first.
func (s *OrderService) SellerOrders(ctx context.Context, sellerID uint) ([]SellerOrderLine, error) {
	var lines []SellerOrderLine
	err := s.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.*, orders.status AS order_status, orders.payment_status, orders.created_at AS ordered_at, orders.ship_city, orders.ship_state").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.seller_id = ?", sellerID).
		Order("order_items.created_at DESC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("list seller orders: %w", err)
	}
	return lines, nil
}
