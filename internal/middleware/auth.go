package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/internal/utils"
	"gorm.io/gorm"
)

const ContextUser = "current_user"

// AuthRequired checks for a valid bearer token and resolves it to the
// current user record. A token whose user no longer exists is rejected.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUser, &user)
		c.Next()
	}
}

// AdminRequired checks that the resolved user has the admin role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.Role.CanAdministrate() {
			c.JSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthRequired, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(ContextUser); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
