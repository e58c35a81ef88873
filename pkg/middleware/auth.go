package middleware

import (
	"net/http"
	"strings"

	"movievault/internal/entity"
	"movievault/pkg/apperrors"
	"movievault/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	// CurrentUserKey is where the guard stores the resolved user.
	CurrentUserKey = "current_user"
	UserIDKey      = "user_id"
)

// UserResolver turns a token's embedded identity back into a stored user.
type UserResolver interface {
	GetUser(userID string) (*entity.User, error)
}

// Auth validates the bearer token and attaches the resolved user to the
// request context. It performs no writes.
func Auth(jwtService *jwt.Service, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := users.GetUser(claims.UserID)
		if err != nil {
			status := http.StatusUnauthorized
			message := "user not found"
			if appErr, ok := apperrors.As(err); ok && appErr.Kind == apperrors.KindInternal {
				status = http.StatusInternalServerError
				message = "internal server error"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser fetches the user attached by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}
