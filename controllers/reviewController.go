package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
	"gorm.io/datatypes"
)

// deliveredOrderFor returns the ID of a delivered order in which the user
// bought the product, or nil.
func deliveredOrderFor(userID, productID uint) *uint {
	var orderID uint
	err := initializers.DB.
		Table("order_items").
		Select("orders.id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status = ?",
			userID, productID, models.OrderStatusDelivered).
		Limit(1).
		Scan(&orderID).Error
	if err != nil || orderID == 0 {
		return nil
	}
	return &orderID
}

// SubmitReview records a rating for a product. Reviews from shoppers with a
// delivered order for the product are marked verified.
func SubmitReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var payload struct {
		ProductID uint     `json:"productId" binding:"required"`
		Rating    int      `json:"rating" binding:"required,min=1,max=5"`
		Comment   string   `json:"comment"`
		Images    []string `json:"images"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, payload.ProductID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	var existing int64
	initializers.DB.Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", payload.ProductID, userID).
		Count(&existing)
	if existing > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "You have already reviewed this product")
		return
	}

	orderID := deliveredOrderFor(userID, payload.ProductID)

	review := models.Review{
		ProductID:  payload.ProductID,
		UserID:     userID,
		OrderID:    orderID,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
		Images:     datatypes.JSONSlice[string](payload.Images),
		IsVerified: orderID != nil,
	}
	if err := initializers.DB.Create(&review).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to save review", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// GetProductReviews lists reviews for a product, newest first, with the
// average rating.
func GetProductReviews(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var reviews []models.Review
	err = initializers.DB.
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch reviews", err)
		return
	}

	var average float64
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		average = float64(total) / float64(len(reviews))
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": average,
		"count":         len(reviews),
	})
}

// CanReview reports whether the caller may review a product and whether the
// review would be marked verified.
func CanReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var existing int64
	initializers.DB.Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&existing)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"canReview": existing == 0,
		"verified":  deliveredOrderFor(userID, uint(productID)) != nil,
	})
}

// DeleteReview removes a review (admin only).
func DeleteReview(ctx *gin.Context) {
	reviewID, err := strconv.Atoi(ctx.Param("reviewId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to delete review", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
