package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cheatsheet-editor/internal/errors"
)

// Middleware requires a valid Bearer token and exposes the subject to the
// handlers via the context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			errors.HandleError(c, errors.Unauthorized("Authorization is not found!", nil))
			c.Abort()
			return
		}

		userID, name, err := VerifyToken(token)
		if err != nil {
			errors.HandleError(c, errors.Unauthorized("Invalid token!", err))
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("userName", name)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}
