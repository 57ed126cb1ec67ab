package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gokulanand247/ecommerce/controllers"
	"github.com/gokulanand247/ecommerce/middlewares"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)

	authed := server.Group("/", middlewares.RequireAuth())
	{
		authed.POST("/product", controllers.CreateProduct)
		authed.PUT("/product/:id", controllers.UpdateProduct)
		authed.DELETE("/product/:id", controllers.DeleteProduct)
		authed.POST("/product-images", controllers.UploadProductImages)
	}
}
