package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
	"github.com/gokulanand247/ecommerce/services"
)

type cartLinePayload struct {
	ProductID     uint   `json:"productId" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// buildCart turns request lines into an aggregated cart backed by live
// product snapshots.
func buildCart(lines []cartLinePayload) (*services.Cart, error) {
	cart := services.NewCart()
	for _, line := range lines {
		var product models.Product
		if err := initializers.DB.First(&product, line.ProductID).Error; err != nil {
			return nil, err
		}
		cart.AddQuantity(product, line.SelectedSize, line.SelectedColor, line.Quantity)
	}
	return cart, nil
}

// GetCart returns the caller's stored cart with derived totals.
func GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	store := services.NewCartStore(initializers.DB)
	cart, err := store.Load(ctx.Request.Context(), userID)
	if err != nil {
		log.Println("Cart load error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items":    cart.Lines(),
		"subtotal": cart.Subtotal(),
		"totalMrp": cart.TotalMRP(),
		"savings":  cart.Savings(),
	})
}

// SaveCart replaces the caller's stored cart wholesale. The client is the
// source of truth; the last writer wins.
func SaveCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var payload struct {
		Items []cartLinePayload `json:"items"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	cart, err := buildCart(payload.Items)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "One or more products no longer exist")
		return
	}

	store := services.NewCartStore(initializers.DB)
	if err := store.Save(ctx.Request.Context(), userID, cart); err != nil {
		log.Println("Cart save error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  "Cart saved",
		"subtotal": cart.Subtotal(),
		"savings":  cart.Savings(),
	})
}

// UpdateCartItem upserts a single stored line; quantity 0 removes it.
func UpdateCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var payload struct {
		ProductID     uint   `json:"productId" binding:"required"`
		Quantity      *int   `json:"quantity" binding:"required"`
		SelectedSize  string `json:"selectedSize"`
		SelectedColor string `json:"selectedColor"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	store := services.NewCartStore(initializers.DB)
	err := store.SetLine(ctx.Request.Context(), userID, payload.ProductID,
		payload.SelectedSize, payload.SelectedColor, *payload.Quantity)
	if err != nil {
		log.Println("Cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart updated"})
}

// ClearCart empties the caller's stored cart.
func ClearCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	store := services.NewCartStore(initializers.DB)
	if err := store.Clear(ctx.Request.Context(), userID); err != nil {
		log.Println("Cart clear error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}
