package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func BannerRoutes(server *gin.Engine) {
	server.GET("/banner", controllers.GetActiveBanners)

	admin := server.Group("/admin/banner", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetBanners)
		admin.POST("", controllers.CreateBanner)
		admin.PATCH("/:bannerId", controllers.UpdateBanner)
		admin.DELETE("/:bannerId", controllers.DeleteBanner)
	}
}
