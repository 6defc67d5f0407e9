package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/staffline-dev/staffline/db"
	"github.com/staffline-dev/staffline/internal/auth"
	"github.com/staffline-dev/staffline/internal/models"
	"github.com/staffline-dev/staffline/internal/types"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := auth.VerifyJWT(parts[1])

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid user ID in token claims"})
			return
		}

		userID := uint(userIDFloat)

		var user models.User

		if err := db.DB.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		})
		ctx.Next()
	}
}

// RequireManager must run after AuthMiddleware.
func RequireManager() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok || user.Role != types.RoleManager {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Manager role required."})
			return
		}

		ctx.Next()
	}
}
