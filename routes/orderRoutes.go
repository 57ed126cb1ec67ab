package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	order := server.Group("/order", middlewares.RequireAuth())
	{
		order.POST("", controllers.CreateOrder)
		order.GET("", controllers.GetMyOrders)
		order.GET("/:orderId", controllers.GetOrder)
		order.POST("/:orderId/payment", controllers.RetryPayment)
		order.POST("/payment-callback", controllers.PaymentCallback)
	}

	admin := server.Group("/admin/order", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetOrders)
		admin.PATCH("/:orderId/status", controllers.UpdateOrderStatus)
	}
}
