package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/museconnect/tutor-admin-api/internal/models"
	"github.com/museconnect/tutor-admin-api/internal/service"
)

const guardTestSecret = "guard-test-secret"

func newGuardRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(nil, nil, nil, service.AuthConfig{
		AccessTokenSecret: guardTestSecret,
		AccessTokenExpiry: time.Hour,
	})

	r := gin.New()
	r.Use(Guard(auth, []string{"/health", "/api/v1/auth/login"}))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/enquiries", func(c *gin.Context) {
		claims, ok := c.Get(ContextUserKey)
		require.True(t, ok)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})
	return r
}

func signGuardToken(t *testing.T, secret string, expiry time.Duration) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "u1",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestGuardAllowsPublicPathWithoutToken(t *testing.T) {
	r := newGuardRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardRejectsProtectedPathWithoutToken(t *testing.T) {
	r := newGuardRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "data")
}

func TestGuardRejectsMalformedHeader(t *testing.T) {
	r := newGuardRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardRejectsGarbageToken(t *testing.T) {
	r := newGuardRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	r := newGuardRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries", nil)
	req.Header.Set("Authorization", "Bearer "+signGuardToken(t, guardTestSecret, -time.Hour))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuardAcceptsValidToken(t *testing.T) {
	r := newGuardRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries", nil)
	req.Header.Set("Authorization", "Bearer "+signGuardToken(t, guardTestSecret, time.Hour))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardPublicMatchIsExact(t *testing.T) {
	r := newGuardRouter(t)

	// A sibling of a public path stays protected.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/enquiries?x=/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
