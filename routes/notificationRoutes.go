package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func NotificationRoutes(server *gin.Engine) {
	notification := server.Group("/notification", middlewares.RequireAuth())
	{
		notification.GET("", controllers.GetNotifications)
		notification.GET("/unread-count", controllers.GetUnreadNotificationCount)
		notification.PATCH("/:notificationId/read", controllers.MarkNotificationRead)
		notification.PATCH("/read-all", controllers.MarkAllNotificationsRead)
	}
}
