package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/gokulanand247/ecommerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPendingOrder(t *testing.T, svc *OrderService, userID uint) *models.Order {
	t.Helper()
	db := svc.DB
	address := createTestAddress(t, db, userID)
	product := createTestProduct(t, db, "Dress", 1234.50, 1500, 10)

	cart := NewCart()
	cart.Add(product, "M", "Red")

	order, err := svc.CreateOrder(context.Background(), userID, cart, address.ID, "")
	require.NoError(t, err)
	return order
}

func TestBeginCreatesGatewayOrderInPaise(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	order := createPendingOrder(t, orders, 1)

	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_GW123","status":"created"}`))
	}))
	defer server.Close()

	svc := &PaymentService{
		DB:        db,
		Client:    resty.New(),
		BaseURL:   server.URL,
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
	}

	session, err := svc.Begin(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "order_GW123", session.GatewayOrderID)
	assert.Equal(t, "INR", session.Currency)
	assert.False(t, session.TestMode)

	// 1234.50 rupees -> 123450 paise.
	assert.Equal(t, int64(123450), session.Amount)
	assert.Equal(t, float64(123450), received["amount"])
	assert.Equal(t, "INR", received["currency"])
}

func TestBeginGatewayRejection(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	order := createPendingOrder(t, orders, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
	}))
	defer server.Close()

	svc := &PaymentService{
		DB:        db,
		Client:    resty.New(),
		BaseURL:   server.URL,
		KeyID:     "rzp_test_key",
		KeySecret: "bad",
	}

	_, err := svc.Begin(context.Background(), order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestBeginUnconfiguredWithoutTestModeFails(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	order := createPendingOrder(t, orders, 1)

	svc := &PaymentService{DB: db, Client: resty.New(), BaseURL: razorpayBaseURL}

	_, err := svc.Begin(context.Background(), order)
	assert.ErrorIs(t, err, ErrPaymentNotConfigured)

	// The order must be untouched.
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, reloaded.PaymentStatus)
}

func TestBeginTestModeBypass(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	order := createPendingOrder(t, orders, 1)

	svc := &PaymentService{DB: db, Client: resty.New(), BaseURL: razorpayBaseURL, TestMode: true}

	session, err := svc.Begin(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, session.TestMode)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, reloaded.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
	assert.Contains(t, reloaded.PaymentID, "test_payment_")
}

func TestConfirmTransitionsOrderAndAppendsTracking(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	order := createPendingOrder(t, orders, 1)

	svc := &PaymentService{DB: db, Client: resty.New(), BaseURL: razorpayBaseURL}

	require.NoError(t, svc.Confirm(context.Background(), order.ID, "pay_ABC"))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusConfirmed, reloaded.Status)
	assert.Equal(t, models.PaymentStatusCompleted, reloaded.PaymentStatus)
	assert.Equal(t, "pay_ABC", reloaded.PaymentID)

	var tracking []models.OrderTracking
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&tracking).Error)
	require.Len(t, tracking, 2)
	assert.Equal(t, "Payment confirmed. Order is being processed.", tracking[1].Message)
	assert.Equal(t, "Processing Center", tracking[1].Location)

	err := svc.Confirm(context.Background(), 9999, "pay_XYZ")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestFailKeepsOrderPendingForRetry(t *testing.T) {
	db := setupTestDB(t)
	orders := NewOrderService(db)
	order := createPendingOrder(t, orders, 1)

	svc := &PaymentService{DB: db, Client: resty.New(), BaseURL: razorpayBaseURL}

	require.NoError(t, svc.Fail(context.Background(), order.ID, "pay_FAILED"))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
	assert.Equal(t, models.PaymentStatusFailed, reloaded.PaymentStatus)

	// Retry path: a later confirm still works against the same order.
	require.NoError(t, svc.Confirm(context.Background(), order.ID, "pay_RETRY"))
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, reloaded.PaymentStatus)
}
