package middleware

import (
	"net/http"
	"strings"

	"github.com/01moynul/stockroom-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// AdminAuth guards the admin API. It expects "Authorization: Bearer <token>".
func AdminAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get the "Authorization" header from the request.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		// 2. The header should be in the format "Bearer [token]".
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			return
		}

		// 3. Validate the token.
		subject, err := tokens.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// 4. Record who is making the request and let it proceed.
		c.Set("admin", subject)
		c.Next()
	}
}
