package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"diskwarden/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T, enabled bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, _ := test.NewNullLogger()
	r := gin.New()
	r.Use(AuthMiddleware(log, enabled))
	r.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddlewareDisabledPassesThrough(t *testing.T) {
	r := newAuthRouter(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	log, _ := test.NewNullLogger()
	services.InitAuthService(log, "0123456789abcdef0123456789abcdef", 0)
	r := newAuthRouter(t, true)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	log, _ := test.NewNullLogger()
	services.InitAuthService(log, "0123456789abcdef0123456789abcdef", 0)
	r := newAuthRouter(t, true)

	token, err := services.GenerateToken("node-1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
