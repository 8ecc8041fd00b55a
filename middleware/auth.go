package middleware

import (
	"net/http"
	"strings"

	"sparklewash/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and puts the user ID on
// the request context. Handlers pass that ID explicitly into the booking
// flow; nothing downstream reads ambient session state.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
