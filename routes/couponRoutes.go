package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func CouponRoutes(server *gin.Engine) {
	server.GET("/coupon", controllers.GetActiveCoupons)
	server.POST("/coupon/apply", middlewares.RequireAuth(), controllers.ApplyCoupon)

	admin := server.Group("/admin/coupon", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetCoupons)
		admin.POST("", controllers.CreateCoupon)
		admin.PATCH("/:couponId", controllers.UpdateCoupon)
		admin.DELETE("/:couponId", controllers.DeleteCoupon)
	}
}
