package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func SellerRoutes(server *gin.Engine) {
	seller := server.Group("/seller", middlewares.RequireAuth(), middlewares.RequireSeller())
	{
		seller.PUT("/profile", controllers.UpdateSellerProfile)
		seller.POST("/request-verification", controllers.RequestVerification)
		seller.GET("/products", controllers.GetSellerProducts)
		seller.GET("/orders", controllers.GetSellerOrders)
	}

	admin := server.Group("/admin/seller", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetAllSellers)
		admin.POST("", controllers.CreateSeller)
		admin.POST("/:sellerId/verify", controllers.VerifySeller)
		admin.PATCH("/:sellerId/status", controllers.ToggleSellerStatus)
	}
}
