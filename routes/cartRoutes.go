package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart)
		cart.PUT("", controllers.SaveCart)
		cart.PATCH("/item", controllers.UpdateCartItem)
		cart.DELETE("", controllers.ClearCart)
	}
}
