package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func AddressRoutes(server *gin.Engine) {
	address := server.Group("/address", middlewares.RequireAuth())
	{
		address.GET("", controllers.GetAddresses)
		address.POST("", controllers.CreateAddress)
		address.PUT("/:addressId", controllers.UpdateAddress)
		address.DELETE("/:addressId", controllers.DeleteAddress)
	}
}
