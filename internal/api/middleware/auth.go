package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
	ContextRole   = "user_role"
)

// AuthMiddleware verifies the bearer access token before any route logic
// runs. Expired and malformed tokens map to distinct error kinds so clients
// can react differently.
func AuthMiddleware(tokens *utils.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendError(c, 401, "Unauthorized", "Please provide a valid access token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			utils.SendError(c, 401, "Unauthorized", "Bearer token required")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				utils.SendError(c, 401, "Token expired", "Your session has expired. Please login again.")
			} else {
				utils.SendError(c, 401, "Invalid token", "The provided token is invalid.")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRoles gates a route by an explicit role allow-list.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.SendError(c, 403, "Forbidden", "You do not have permission to access this resource")
		c.Abort()
	}
}
