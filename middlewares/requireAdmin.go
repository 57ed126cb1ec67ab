package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// requireRole gates a route on the role claim set by RequireAuth.
func requireRole(role, deniedMessage string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userClaims, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		claims, ok := userClaims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
			return
		}
		tokenRole, ok := claims["role"].(string)
		if !ok || tokenRole != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": deniedMessage})
			return
		}

		ctx.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return requireRole("admin", "Admin access required")
}
