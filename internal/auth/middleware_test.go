package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dwa/backend/internal/auth"
	"dwa/backend/internal/storage/memory"
)

func TestRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokens("test-secret", time.Hour)
	svc := auth.NewService(memory.NewUserStore(), tokens)

	r := gin.New()
	r.GET("/me", auth.RequireToken(svc), func(c *gin.Context) {
		id, ok := auth.UserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	good, err := tokens.Issue(7)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusBadRequest},
		{"valid token", "Bearer " + good, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, c.status, w.Code)
		})
	}
}
