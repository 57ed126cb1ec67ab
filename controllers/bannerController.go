package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
)

// GetActiveBanners lists the banners shown on the storefront home page.
func GetActiveBanners(ctx *gin.Context) {
	var banners []models.Banner
	err := initializers.DB.
		Where("is_active = ?", true).
		Order("sort_order ASC, created_at DESC").
		Find(&banners).Error
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch banners", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"banners": banners})
}

type bannerPayload struct {
	Title      string `json:"title" binding:"required"`
	Subtitle   string `json:"subtitle"`
	ImageURL   string `json:"imageUrl" binding:"required"`
	ButtonText string `json:"buttonText"`
	LinkURL    string `json:"linkUrl"`
	SortOrder  int    `json:"sortOrder"`
	IsActive   *bool  `json:"isActive"`
}

// CreateBanner adds a home page banner (admin only).
func CreateBanner(ctx *gin.Context) {
	var payload bannerPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	banner := models.Banner{
		Title:      payload.Title,
		Subtitle:   payload.Subtitle,
		ImageURL:   payload.ImageURL,
		ButtonText: payload.ButtonText,
		LinkURL:    payload.LinkURL,
		SortOrder:  payload.SortOrder,
		IsActive:   true,
	}
	if payload.IsActive != nil {
		banner.IsActive = *payload.IsActive
	}

	if err := initializers.DB.Create(&banner).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to create banner", err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Banner created successfully",
		"banner":  banner,
	})
}

// UpdateBanner edits a banner (admin only).
func UpdateBanner(ctx *gin.Context) {
	bannerID, err := strconv.Atoi(ctx.Param("bannerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid banner ID")
		return
	}

	var banner models.Banner
	if err := initializers.DB.First(&banner, bannerID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Banner not found")
		return
	}

	var payload struct {
		Title      *string `json:"title"`
		Subtitle   *string `json:"subtitle"`
		ImageURL   *string `json:"imageUrl"`
		ButtonText *string `json:"buttonText"`
		LinkURL    *string `json:"linkUrl"`
		SortOrder  *int    `json:"sortOrder"`
		IsActive   *bool   `json:"isActive"`
	}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		updates["title"] = *payload.Title
	}
	if payload.Subtitle != nil {
		updates["subtitle"] = *payload.Subtitle
	}
	if payload.ImageURL != nil {
		updates["image_url"] = *payload.ImageURL
	}
	if payload.ButtonText != nil {
		updates["button_text"] = *payload.ButtonText
	}
	if payload.LinkURL != nil {
		updates["link_url"] = *payload.LinkURL
	}
	if payload.SortOrder != nil {
		updates["sort_order"] = *payload.SortOrder
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}

	if err := initializers.DB.Model(&banner).Updates(updates).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update banner", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Banner updated successfully",
		"banner":  banner,
	})
}

// GetBanners lists every banner, active or not (admin only).
func GetBanners(ctx *gin.Context) {
	var banners []models.Banner
	if err := initializers.DB.Order("sort_order ASC").Find(&banners).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch banners", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"banners": banners})
}

// DeleteBanner removes a banner (admin only).
func DeleteBanner(ctx *gin.Context) {
	bannerID, err := strconv.Atoi(ctx.Param("bannerId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid banner ID")
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Banner{}, bannerID)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to delete banner", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Banner not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}
