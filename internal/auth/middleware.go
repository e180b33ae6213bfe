package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key RequireToken stores the caller's id under.
const UserIDKey = "userID"

// BearerToken extracts the token from an Authorization header. It accepts a
// bare token as well as the "Bearer <token>" form.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// RequireToken rejects requests without a valid bearer token: 401 when none
// is supplied, 400 when it does not verify.
func RequireToken(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}
		id, err := svc.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid token."})
			return
		}
		c.Set(UserIDKey, id)
		c.Next()
	}
}

// UserID returns the id stored by RequireToken.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
