package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/token"
)

const ContextUser = "currentUser"

// Authenticate verifies the bearer token and loads the referenced user
// from the database. A valid token for a since-deleted user is refused.
func Authenticate(issuer *token.Issuer, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Not authorized to access this route.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Not authorized to access this route.")
			c.Abort()
			return
		}

		claims, err := issuer.Verify(parts[1])
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			httperr.Unauthorized(c, "user_not_found", "Not authorized to access this route.")
			c.Abort()
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// Authorize runs after Authenticate and rejects users whose role is
// outside the allowed set.
func Authorize(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			httperr.Unauthorized(c, "user_not_in_context", "Not authorized to access this route.")
			c.Abort()
			return
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		httperr.Forbidden(c, "forbidden", "User role "+user.Role+" is not authorized to access this route.")
		c.Abort()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
