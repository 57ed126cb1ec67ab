package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
	"github.com/gokulanand247/ecommerce/services"
)

// CreateSeller registers a seller account (admin only). Sellers complete
// their own profile and request verification afterwards.
func CreateSeller(ctx *gin.Context) {
	var payload struct {
		Username string `json:"username" binding:"required,min=4"`
		Password string `json:"password" binding:"required,min=8"`
		ShopName string `json:"shopName" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var existing int64
	initializers.DB.Model(&models.Seller{}).Where("username = ?", payload.Username).Count(&existing)
	if existing > 0 {
		sendErrorResponse(ctx, http.StatusConflict, "Username is already taken")
		return
	}

	hashedPassword, err := hashPassword(payload.Password)
	if err != nil {
		log.Println("Error hashing password:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	seller := models.Seller{
		Username: payload.Username,
		Password: hashedPassword,
		ShopName: payload.ShopName,
		IsActive: true,
	}
	if err := initializers.DB.Create(&seller).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to create seller", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Seller account created",
		"seller":  seller,
	})
}

// UpdateSellerProfile completes or edits the caller's shop profile.
func UpdateSellerProfile(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Seller not found in context")
		return
	}

	var seller models.Seller
	if err := initializers.DB.First(&seller, sellerID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Seller not found")
		return
	}

	var payload struct {
		ShopName string `json:"shopName" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"required"`
		Address  string `json:"address" binding:"required"`
		City     string `json:"city" binding:"required"`
		State    string `json:"state" binding:"required"`
		Pincode  string `json:"pincode" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if !phonePattern.MatchString(payload.Phone) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Phone must be a valid 10 digit mobile number")
		return
	}
	if !pincodePattern.MatchString(payload.Pincode) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Pincode must be 6 digits")
		return
	}

	updates := map[string]interface{}{
		"shop_name":         payload.ShopName,
		"email":             payload.Email,
		"phone":             payload.Phone,
		"address":           payload.Address,
		"city":              payload.City,
		"state":             payload.State,
		"pincode":           payload.Pincode,
		"profile_completed": true,
	}
	if err := initializers.DB.Model(&seller).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update profile", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"seller":  seller,
	})
}

// RequestVerification asks an admin to review the caller's shop.
func RequestVerification(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Seller not found in context")
		return
	}

	var seller models.Seller
	if err := initializers.DB.First(&seller, sellerID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Seller not found")
		return
	}
	if !seller.ProfileCompleted {
		sendErrorResponse(ctx, http.StatusBadRequest, "Complete your shop profile before requesting verification")
		return
	}
	if seller.IsVerified {
		sendErrorResponse(ctx, http.StatusBadRequest, "Your shop is already verified")
		return
	}

	now := time.Now()
	if err := initializers.DB.Model(&seller).Update("verification_requested_at", &now).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to request verification", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Verification requested. An admin will review your shop."})
}

// GetSellerProducts lists the caller's own products.
func GetSellerProducts(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Seller not found in context")
		return
	}

	var products []models.Product
	err := initializers.DB.
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

// GetSellerOrders lists order lines containing the caller's products.
func GetSellerOrders(ctx *gin.Context) {
	sellerID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Seller not found in context")
		return
	}

	lines, err := services.NewOrderService(initializers.DB).SellerOrders(ctx.Request.Context(), sellerID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": lines})
}

// GetAllSellers lists sellers for the admin dashboard, pending verification
// requests first.
func GetAllSellers(ctx *gin.Context) {
	var sellers []models.Seller
	err := initializers.DB.
		Order("verification_requested_at IS NULL, verification_requested_at ASC").
		Find(&sellers).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch sellers", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"sellers": sellers})
}

// VerifySeller approves a seller's verification request (admin only).
func VerifySeller(ctx *gin.Context) {
	adminID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Admin not found in context")
		return
	}

	sellerID, err := strconv.Atoi(ctx.Param("sellerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid seller ID")
		return
	}

	var seller models.Seller
	if err := initializers.DB.First(&seller, sellerID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Seller not found")
		return
	}
	if seller.IsVerified {
		sendErrorResponse(ctx, http.StatusBadRequest, "Seller is already verified")
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_verified": true,
		"verified_at": &now,
		"verified_by": adminID,
	}
	if err := initializers.DB.Model(&seller).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to verify seller", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Seller verified successfully"})
}

// ToggleSellerStatus enables or disables a seller account (admin only).
// Disabled sellers cannot log in; their products stay listed.
func ToggleSellerStatus(ctx *gin.Context) {
	sellerID, err := strconv.Atoi(ctx.Param("sellerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid seller ID")
		return
	}

	var seller models.Seller
	if err := initializers.DB.First(&seller, sellerID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Seller not found")
		return
	}

	if err := initializers.DB.Model(&seller).Update("is_active", !seller.IsActive).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update seller", err)
		return
	}

	message := "Seller account disabled"
	if !seller.IsActive {
		message = "Seller account enabled"
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": message})
}
