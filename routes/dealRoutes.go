package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func DealRoutes(server *gin.Engine) {
	server.GET("/deal", controllers.GetActiveDeals)

	admin := server.Group("/admin/deal", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetDeals)
		admin.POST("", controllers.CreateDeal)
		admin.PATCH("/:dealId", controllers.UpdateDeal)
		admin.DELETE("/:dealId", controllers.DeleteDeal)
	}
}
