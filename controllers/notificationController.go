package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/initializers"
	"github.com/gokulanand247/ecommerce/models"
)

// notificationScope restricts queries to the caller's notifications. Sellers
// see their own rows, admins see the rows with no seller.
func notificationScope(ctx *gin.Context) (interface{}, string, bool) {
	switch currentRole(ctx) {
	case "seller":
		sellerID, ok := currentUserID(ctx)
		if !ok {
			return nil, "", false
		}
		return sellerID, "seller_id = ?", true
	case "admin":
		return nil, "seller_id IS NULL", true
	default:
		return nil, "", false
	}
}

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(ctx *gin.Context) {
	arg, condition, ok := notificationScope(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusForbidden, "Access denied")
		return
	}

	query := initializers.DB.Order("created_at DESC").Limit(50)
	if arg != nil {
		query = query.Where(condition, arg)
	} else {
		query = query.Where(condition)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch notifications", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"notifications": notifications})
}

// GetUnreadNotificationCount returns how many notifications are unread.
func GetUnreadNotificationCount(ctx *gin.Context) {
	arg, condition, ok := notificationScope(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusForbidden, "Access denied")
		return
	}

	query := initializers.DB.Model(&models.Notification{}).Where("is_read = ?", false)
	if arg != nil {
		query = query.Where(condition, arg)
	} else {
		query = query.Where(condition)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch notifications", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"unread": count})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(ctx *gin.Context) {
	arg, condition, ok := notificationScope(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusForbidden, "Access denied")
		return
	}

	notificationID, err := strconv.Atoi(ctx.Param("notificationId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	query := initializers.DB.Model(&models.Notification{}).Where("id = ?", notificationID)
	if arg != nil {
		query = query.Where(condition, arg)
	} else {
		query = query.Where(condition)
	}

	result := query.Update("is_read", true)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update notification", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Notification not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification of the caller.
func MarkAllNotificationsRead(ctx *gin.Context) {
	arg, condition, ok := notificationScope(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusForbidden, "Access denied")
		return
	}

	query := initializers.DB.Model(&models.Notification{}).Where("is_read = ?", false)
	if arg != nil {
		query = query.Where(condition, arg)
	} else {
		query = query.Where(condition)
	}

	if err := query.Update("is_read", true).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to update notifications", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
