package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gokulanand247/ecommerce/models"
	"gorm.io/gorm"
)

const razorpayBaseURL = "https://api.razorpay.com"

// CheckoutSession holds everything the client needs to open the hosted
// payment UI for an order.
type CheckoutSession struct {
	OrderID        uint   `json:"orderId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	KeyID          string `json:"keyId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	TestMode       bool   `json:"testMode"`
}

type PaymentService struct {
	DB        *gorm.DB
	Client    *resty.Client
	BaseURL   string
	KeyID     string
	KeySecret string
	TestMode  bool
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{
		DB:        db,
		Client:    resty.New().SetTimeout(30 * time.Second),
		BaseURL:   razorpayBaseURL,
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		TestMode:  os.Getenv("PAYMENT_TEST_MODE") == "true",
	}
}

func (s *PaymentService) Configured() bool {
	return s.KeyID != "" && s.KeySecret != ""
}

// Begin opens a payment session for a pending order. With no gateway
// credentials the order is only completed synthetically when the test-mode
// flag is set explicitly; otherwise checkout fails.
func (s *PaymentService) Begin(ctx context.Context, order *models.Order) (*CheckoutSession, error) {
	if order.PaymentStatus == models.PaymentStatusCompleted {
		return nil, fmt.Errorf("order %d is already paid", order.ID)
	}

	amount := toPaise(order.TotalAmount)

	if !s.Configured() {
		if !s.TestMode {
			return nil, ErrPaymentNotConfigured
		}
		paymentID := fmt.Sprintf("test_payment_%d", time.Now().Unix())
		if err := s.Confirm(ctx, order.ID, paymentID); err != nil {
			return nil, err
		}
		return &CheckoutSession{
			OrderID:  order.ID,
			KeyID:    "",
			Amount:   amount,
			Currency: "INR",
			TestMode: true,
		}, nil
	}

	body := map[string]any{
		"amount":   amount,
		"currency": "INR",
		"receipt":  fmt.Sprintf("ORDER-%d", order.ID),
		"notes": map[string]string{
			"order_id": fmt.Sprintf("%d", order.ID),
			"city":     order.ShipCity,
		},
	}

	resp, err := s.Client.R().
		SetContext(ctx).
		SetBasicAuth(s.KeyID, s.KeySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(s.BaseURL + "/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order request failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	var gateway struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &gateway); err != nil {
		return nil, fmt.Errorf("parse gateway response: %w", err)
	}
	if gateway.ID == "" {
		return nil, fmt.Errorf("gateway order id missing in response: %s", resp.Body())
	}

	return &CheckoutSession{
		OrderID:        order.ID,
		GatewayOrderID: gateway.ID,
		KeyID:          s.KeyID,
		Amount:         amount,
		Currency:       "INR",
	}, nil
}

// Confirm records a successful payment: the order becomes confirmed, the
// payment completed, and a tracking event is appended.
func (s *PaymentService) Confirm(ctx context.Context, orderID uint, paymentID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]any{
			"payment_id":     paymentID,
			"payment_status": models.PaymentStatusCompleted,
			"status":         models.OrderStatusConfirmed,
		})
		if res.Error != nil {
			return fmt.Errorf("update order payment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}

		tracking := models.OrderTracking{
			OrderID:  orderID,
			Status:   models.OrderStatusConfirmed,
			Message:  "Payment confirmed. Order is being processed.",
			Location: "Processing Center",
		}
		if err := tx.Create(&tracking).Error; err != nil {
			return fmt.Errorf("create tracking event: %w", err)
		}
		return nil
	})
}

// Fail records a failed payment attempt. The order stays pending so the
// shopper can retry against the same order id.
func (s *PaymentService) Fail(ctx context.Context, orderID uint, paymentID string) error {
	res := s.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"payment_id":     paymentID,
		"payment_status": models.PaymentStatusFailed,
	})
	if res.Error != nil {
		return fmt.Errorf("update order payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
