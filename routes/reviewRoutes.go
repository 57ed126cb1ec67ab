package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func ReviewRoutes(server *gin.Engine) {
	server.GET("/review/:productId", controllers.GetProductReviews)

	authed := server.Group("/review", middlewares.RequireAuth())
	{
		authed.POST("", controllers.SubmitReview)
		authed.GET("/:productId/eligibility", controllers.CanReview)
	}

	server.DELETE("/admin/review/:reviewId",
		middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.DeleteReview)
}
