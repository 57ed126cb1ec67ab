package middlewares

import (
	"github.com/gin-gonic/gin"
)

func RequireSeller() gin.HandlerFunc {
	return requireRole("seller", "Seller access required")
}
