package middleware

import (
	"log/slog"
	"strings"

	"giphyexplorer/internal/microservices/http-api/apperror"
	"giphyexplorer/internal/microservices/http-api/models"
	"giphyexplorer/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userID"
	userKey   = "user"
	claimsKey = "claims"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It requires a valid bearer token whose user still exists; failures never reach the handler.
func AuthMiddleware(authService service.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, apperror.NewUnauthorized("No token provided"))
			return
		}

		// Extract token (format: "Bearer <token>")
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			abortWith(c, apperror.NewUnauthorized("Invalid token"))
			return
		}

		// Validate token
		claims, err := authService.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			abortWith(c, err)
			return
		}

		user, err := authService.GetCurrentUser(c.Request.Context(), claims.Subject)
		if err != nil {
			if apperror.KindOf(err) == apperror.NotFound {
				logger.Warn("token_user_missing", "user_id", claims.Subject)
				err = apperror.Wrap(apperror.Unauthorized, "Invalid token", err)
			}
			abortWith(c, err)
			return
		}

		// Set user info in context for handlers to use
		c.Set(claimsKey, claims)
		SetCurrentUser(c, user)

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// SetCurrentUser records the authenticated user on the request context.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userIDKey, user.ID)
	c.Set(userKey, user)
}

// CurrentUserID returns the authenticated user's id, empty outside the gate.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// CurrentUser returns the authenticated user resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
