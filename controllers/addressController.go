package controllers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
	"gorm.io/gorm"
)

var (
	phonePattern   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

type addressPayload struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

func (p *addressPayload) validate() string {
	if !phonePattern.MatchString(p.Phone) {
		return "Phone must be a valid 10 digit mobile number"
	}
	if !pincodePattern.MatchString(p.Pincode) {
		return "Pincode must be 6 digits"
	}
	return ""
}

// GetAddresses lists the caller's saved addresses, default first.
func GetAddresses(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var addresses []models.Address
	err := initializers.DB.
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch addresses", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress saves a new delivery address for the caller.
func CreateAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var payload addressPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if message := payload.validate(); message != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, message)
		return
	}

	var count int64
	initializers.DB.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count)

	address := models.Address{
		UserID:    userID,
		Name:      payload.Name,
		Phone:     payload.Phone,
		Street:    payload.Street,
		City:      payload.City,
		State:     payload.State,
		Pincode:   payload.Pincode,
		IsDefault: payload.IsDefault || count == 0,
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to save address", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Address saved successfully",
		"address": address,
	})
}

// UpdateAddress edits one of the caller's addresses.
func UpdateAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	addressID, err := strconv.Atoi(ctx.Param("addressId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return
	}

	var address models.Address
	if err := initializers.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		return
	}

	var payload addressPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if message := payload.validate(); message != "" {
		sendErrorResponse(ctx, http.StatusBadRequest, message)
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if payload.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]interface{}{
			"name":       payload.Name,
			"phone":      payload.Phone,
			"street":     payload.Street,
			"city":       payload.City,
			"state":      payload.State,
			"pincode":    payload.Pincode,
			"is_default": payload.IsDefault,
		}).Error
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update address", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"address": address,
	})
}

// DeleteAddress removes one of the caller's addresses. Orders keep their own
// snapshot of the shipping details.
func DeleteAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	addressID, err := strconv.Atoi(ctx.Param("addressId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return
	}

	result := initializers.DB.Unscoped().
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to delete address", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
