package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/shoppyglobe/shoppyglobe-api/errors"
)

// UserIDKey is the context key the auth guard stores the verified user id
// under.
const UserIDKey = "userID"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth is the single auth guard used by every protected route.
// A missing or non-Bearer Authorization header is rejected with 401; a
// credential that is present but fails verification with 403. On success the
// verified user id is attached to the request context.
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrMissingCredential.Message})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": apperrors.ErrInvalidCredential.Message})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the verified user id set by RequireAuth.
func UserID(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserIDKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("user ID not found in context")
}
