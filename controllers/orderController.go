package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
	"github.com/gokulanand247/ecommerce/services"
	"github.com/gokulanand247/ecommerce/utils"
)

// orderErrorStatus maps service failures onto HTTP responses. Anything not
// listed is a server-side problem.
func orderErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest, "Your cart is empty"
	case errors.Is(err, services.ErrAddressNotFound):
		return http.StatusBadRequest, "Delivery address not found"
	case errors.Is(err, services.ErrVariantRequired):
		return http.StatusBadRequest, "Please select size and color for all items"
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrProductUnavailable):
		return http.StatusBadRequest, "One or more items are no longer available"
	case errors.Is(err, services.ErrInsufficientStock):
		return http.StatusConflict, "One or more items are out of stock"
	case errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponMinOrder),
		errors.Is(err, services.ErrCouponExhausted):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to create order. Please try again."
	}
}

// CreateOrder turns the caller's cart into an order and opens a payment
// session for it.
func CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var payload struct {
		AddressID  uint              `json:"addressId" binding:"required"`
		CouponCode string            `json:"couponCode"`
		Items      []cartLinePayload `json:"items"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	var cart *services.Cart
	var err error
	if len(payload.Items) > 0 {
		cart, err = buildCart(payload.Items)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "One or more products no longer exist")
			return
		}
	} else {
		cart, err = services.NewCartStore(initializers.DB).Load(ctx.Request.Context(), userID)
		if err != nil {
			log.Println("Cart load error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to load cart")
			return
		}
	}

	orderService := services.NewOrderService(initializers.DB)
	order, err := orderService.CreateOrder(ctx.Request.Context(), userID, cart, payload.AddressID, payload.CouponCode)
	if err != nil {
		status, message := orderErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Println("Order creation error:", err)
		}
		sendErrorResponse(ctx, status, message)
		return
	}

	paymentService := services.NewPaymentService(initializers.DB)
	session, err := paymentService.Begin(ctx.Request.Context(), order)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotConfigured) {
			// The order stays pending; payment can be retried once the
			// gateway is configured.
			sendJSONResponse(ctx, http.StatusCreated, gin.H{
				"message": "Order created, but payment is currently unavailable",
				"order":   order,
			})
			return
		}
		log.Println("Payment session error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to initiate payment")
		return
	}

	// Checkout empties the stored cart; the order now owns the items.
	if err := services.NewCartStore(initializers.DB).Clear(ctx.Request.Context(), userID); err != nil {
		log.Println("Cart clear error after checkout:", err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
		"payment": session,
	})
}

// RetryPayment opens a fresh payment session for an existing pending order.
func RetryPayment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	orderService := services.NewOrderService(initializers.DB)
	order, err := orderService.GetOrder(ctx.Request.Context(), uint(orderID), userID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	session, err := services.NewPaymentService(initializers.DB).Begin(ctx.Request.Context(), order)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotConfigured) {
			sendErrorResponse(ctx, http.StatusServiceUnavailable, "Payment is currently unavailable")
			return
		}
		log.Println("Payment session error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to initiate payment")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"payment": session})
}

// PaymentCallback records the gateway's verdict on a payment attempt.
func PaymentCallback(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var payload struct {
		OrderID   uint   `json:"orderId" binding:"required"`
		PaymentID string `json:"paymentId"`
		Status    string `json:"status" binding:"required"`
		Reason    string `json:"reason"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	orderService := services.NewOrderService(initializers.DB)
	order, err := orderService.GetOrder(ctx.Request.Context(), payload.OrderID, userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	paymentService := services.NewPaymentService(initializers.DB)
	switch payload.Status {
	case "success":
		if err := paymentService.Confirm(ctx.Request.Context(), order.ID, payload.PaymentID); err != nil {
			log.Println("Payment confirmation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to confirm payment")
			return
		}
		sendOrderConfirmationEmail(userID, order)
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment successful! Your order has been placed."})
	case "failed":
		if err := paymentService.Fail(ctx.Request.Context(), order.ID, payload.PaymentID); err != nil {
			log.Println("Payment failure record error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to record payment result")
			return
		}
		message := "Payment failed"
		if payload.Reason != "" {
			message = "Payment failed: " + payload.Reason
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message, "retryable": true})
	case "cancelled":
		// The order stays pending; the shopper may retry later.
		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Payment cancelled", "retryable": true})
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown payment status")
	}
}

func sendOrderConfirmationEmail(userID uint, order *models.Order) {
	var user models.User
	if err := initializers.DB.First(&user, userID).Error; err != nil {
		log.Println("Order confirmation email skipped, user not found:", err)
		return
	}

	emailData := utils.EmailData{
		Name:    user.Name,
		Message: "Your payment was received and your order is confirmed. We will notify you when it ships.",
	}
	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendEmail(user.Email, "Order Confirmed", emailData, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
}

// GetOrders lists every order for the admin dashboard.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems")

	if search := ctx.Query("search"); search != "" {
		query = query.Where("id LIKE ?", "%"+search+"%")
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("id LIKE ?", "%"+search+"%")
	}
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

// GetMyOrders lists the caller's own orders.
func GetMyOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orders, err := services.NewOrderService(initializers.DB).ListUserOrders(ctx.Request.Context(), userID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns one of the caller's orders with items and tracking.
func GetOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := services.NewOrderService(initializers.DB).GetOrder(ctx.Request.Context(), uint(orderID), userID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus moves an order along its lifecycle (admin only) and
// appends the tracking event shoppers see.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	err = services.NewOrderService(initializers.DB).UpdateStatus(ctx.Request.Context(), uint(orderID), payload.Status)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated"})
}
