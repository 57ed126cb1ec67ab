package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
	"github.com/gokulanand247/ecommerce/services"
)

// ApplyCoupon validates a code against the caller's cart total without
// consuming a use.
func ApplyCoupon(ctx *gin.Context) {
	var payload struct {
		Code     string  `json:"code" binding:"required"`
		Subtotal float64 `json:"subtotal" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	application, err := services.NewCouponService(initializers.DB).Evaluate(ctx.Request.Context(), payload.Code, payload.Subtotal)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCouponInvalid):
			sendErrorResponse(ctx, http.StatusNotFound, "Invalid coupon code")
		case errors.Is(err, services.ErrCouponExpired),
			errors.Is(err, services.ErrCouponMinOrder),
			errors.Is(err, services.ErrCouponExhausted):
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		default:
			log.Println(err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"coupon": application})
}

// GetActiveCoupons lists coupons shoppers can currently use.
func GetActiveCoupons(ctx *gin.Context) {
	coupons, err := services.NewCouponService(initializers.DB).ActiveCoupons(ctx.Request.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch coupons.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"coupons": coupons})
}

type couponPayload struct {
	Code              string   `json:"code" binding:"required"`
	DiscountType      string   `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue     float64  `json:"discountValue" binding:"required,gt=0"`
	MinOrderAmount    float64  `json:"minOrderAmount"`
	MaxDiscountAmount *float64 `json:"maxDiscountAmount"`
	ValidFrom         string   `json:"validFrom" binding:"required"`
	ValidUntil        string   `json:"validUntil" binding:"required"`
	UsageLimit        *int     `json:"usageLimit"`
	IsActive          *bool    `json:"isActive"`
}

func (p *couponPayload) window() (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, p.ValidFrom)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	until, err := time.Parse(time.RFC3339, p.ValidUntil)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, until, nil
}

// CreateCoupon adds a coupon (admin only).
func CreateCoupon(ctx *gin.Context) {
	var payload couponPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	from, until, err := payload.window()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Dates must be in RFC 3339 format")
		return
	}
	if !until.After(from) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Validity window must end after it starts")
		return
	}
	if payload.DiscountType == models.DiscountTypePercentage && payload.DiscountValue > 100 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Percentage discount cannot exceed 100")
		return
	}

	coupon := models.Coupon{
		Code:              strings.ToUpper(strings.TrimSpace(payload.Code)),
		DiscountType:      payload.DiscountType,
		DiscountValue:     payload.DiscountValue,
		MinOrderAmount:    payload.MinOrderAmount,
		MaxDiscountAmount: payload.MaxDiscountAmount,
		ValidFrom:         from,
		ValidUntil:        until,
		UsageLimit:        payload.UsageLimit,
		IsActive:          true,
	}
	if payload.IsActive != nil {
		coupon.IsActive = *payload.IsActive
	}

	if err := initializers.DB.Create(&coupon).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to create coupon", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Coupon created successfully",
		"coupon":  coupon,
	})
}

// UpdateCoupon edits a coupon (admin only).
func UpdateCoupon(ctx *gin.Context) {
	couponID, err := strconv.Atoi(ctx.Param("couponId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid coupon ID")
		return
	}

	var coupon models.Coupon
	if err := initializers.DB.First(&coupon, couponID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Coupon not found")
		return
	}

	var payload struct {
		DiscountValue     *float64 `json:"discountValue"`
		MinOrderAmount    *float64 `json:"minOrderAmount"`
		MaxDiscountAmount *float64 `json:"maxDiscountAmount"`
		ValidUntil        *string  `json:"validUntil"`
		UsageLimit        *int     `json:"usageLimit"`
		IsActive          *bool    `json:"isActive"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]interface{}{}
	if payload.DiscountValue != nil {
		updates["discount_value"] = *payload.DiscountValue
	}
	if payload.MinOrderAmount != nil {
		updates["min_order_amount"] = *payload.MinOrderAmount
	}
	if payload.MaxDiscountAmount != nil {
		updates["max_discount_amount"] = *payload.MaxDiscountAmount
	}
	if payload.ValidUntil != nil {
		until, err := time.Parse(time.RFC3339, *payload.ValidUntil)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Dates must be in RFC 3339 format")
			return
		}
		updates["valid_until"] = until
	}
	if payload.UsageLimit != nil {
		updates["usage_limit"] = *payload.UsageLimit
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	if err := initializers.DB.Model(&coupon).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update coupon", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Coupon updated successfully",
		"coupon":  coupon,
	})
}

// GetCoupons lists every coupon with its usage count (admin only).
func GetCoupons(ctx *gin.Context) {
	var coupons []models.Coupon
	if err := initializers.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch coupons", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"coupons": coupons})
}

// DeleteCoupon removes a coupon (admin only). Past usage records stay for
// auditing.
func DeleteCoupon(ctx *gin.Context) {
	couponID, err := strconv.Atoi(ctx.Param("couponId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid coupon ID")
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Coupon{}, couponID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to delete coupon", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Coupon not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}
