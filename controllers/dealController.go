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

// GetActiveDeals returns the deals currently running, with sale prices
// resolved for the storefront.
func GetActiveDeals(ctx *gin.Context) {
	deals, err := services.NewDealService(initializers.DB).ActiveDeals(ctx.Request.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch deals.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"deals": deals})
}

type dealPayload struct {
	ProductID          uint    `json:"productId" binding:"required"`
	DiscountPercentage float64 `json:"discountPercentage" binding:"required,gt=0,lte=90"`
	StartsAt           string  `json:"startsAt" binding:"required"`
	EndsAt             string  `json:"endsAt" binding:"required"`
	SortOrder          int     `json:"sortOrder"`
}

// CreateDeal schedules a deal on a product (admin only).
func CreateDeal(ctx *gin.Context) {
	var payload dealPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	startsAt, err := time.Parse(time.RFC3339, payload.StartsAt)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Dates must be in RFC 3339 format")
		return
	}
	endsAt, err := time.Parse(time.RFC3339, payload.EndsAt)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Dates must be in RFC 3339 format")
		return
	}
	if !endsAt.After(startsAt) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Deal must end after it starts")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, payload.ProductID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	deal := models.Deal{
		ProductID:          payload.ProductID,
		DiscountPercentage: payload.DiscountPercentage,
		StartsAt:           startsAt,
		EndsAt:             endsAt,
		IsActive:           true,
		SortOrder:          payload.SortOrder,
	}
	if err := initializers.DB.Create(&deal).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to create deal", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Deal created successfully",
		"deal":    deal,
	})
}

// UpdateDeal edits a scheduled deal (admin only).
func UpdateDeal(ctx *gin.Context) {
	dealID, err := strconv.Atoi(ctx.Param("dealId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid deal ID")
		return
	}

	var deal models.Deal
	if err := initializers.DB.First(&deal, dealID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Deal not found")
		return
	}

	var payload struct {
		DiscountPercentage *float64 `json:"discountPercentage"`
		StartsAt           *string  `json:"startsAt"`
		EndsAt             *string  `json:"endsAt"`
		IsActive           *bool    `json:"isActive"`
		SortOrder          *int     `json:"sortOrder"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]interface{}{}
	if payload.DiscountPercentage != nil {
		if *payload.DiscountPercentage <= 0 || *payload.DiscountPercentage > 90 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Discount percentage must be between 1 and 90")
			return
		}
		updates["discount_percentage"] = *payload.DiscountPercentage
	}
	if payload.StartsAt != nil {
		startsAt, err := time.Parse(time.RFC3339, *payload.StartsAt)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Dates must be in RFC 3339 format")
			return
		}
		updates["starts_at"] = startsAt
	}
	if payload.EndsAt != nil {
		endsAt, err := time.Parse(time.RFC3339, *payload.EndsAt)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Dates must be in RFC 3339 format")
			return
		}
		updates["ends_at"] = endsAt
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if payload.SortOrder != nil {
		updates["sort_order"] = *payload.SortOrder
	}

	if err := initializers.DB.Model(&deal).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update deal", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Deal updated successfully",
		"deal":    deal,
	})
}

// GetDeals lists every deal including expired ones (admin only).
func GetDeals(ctx *gin.Context) {
	var deals []models.Deal
	if err := initializers.DB.Preload("Product").Order("created_at DESC").Find(&deals).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch deals", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"deals": deals})
}

// DeleteDeal removes a deal (admin only).
func DeleteDeal(ctx *gin.Context) {
	dealID, err := strconv.Atoi(ctx.Param("dealId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid deal ID")
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Deal{}, dealID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to delete deal", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Deal not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Deal deleted successfully"})
}
