package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystore/backend/internal/infrastructure/auth"
	"github.com/mystore/backend/internal/infrastructure/config"
)

func newMiddlewareJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware",
		AccessTokenExpiration: time.Hour,
		Issuer:                "mystore-test",
	})
}

func issueTestToken(t *testing.T, svc *auth.JWTService) (*auth.IssuedToken, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	token, err := svc.GenerateToken(auth.GenerateTokenInput{
		UserID:  userID,
		Email:   "owner@example.com",
		Company: "Acme",
	})
	require.NoError(t, err)
	return token, userID
}

func setupJWTRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetJWTUserID(c),
			"email":   GetJWTEmail(c),
		})
	})
	router.GET("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newMiddlewareJWTService(t)
	token, userID := issueTestToken(t, svc)
	router := setupJWTRouter(DefaultJWTConfig(svc))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "owner@example.com")
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	svc := newMiddlewareJWTService(t)
	router := setupJWTRouter(DefaultJWTConfig(svc))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	svc := newMiddlewareJWTService(t)
	router := setupJWTRouter(DefaultJWTConfig(svc))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-middleware",
		AccessTokenExpiration: -time.Hour,
		Issuer:                "mystore-test",
	})
	token, _ := issueTestToken(t, expired)

	router := setupJWTRouter(DefaultJWTConfig(newMiddlewareJWTService(t)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	svc := newMiddlewareJWTService(t)
	router := setupJWTRouter(DefaultJWTConfig(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_BlacklistedToken(t *testing.T) {
	svc := newMiddlewareJWTService(t)
	token, _ := issueTestToken(t, svc)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	router := setupJWTRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_InvalidatedUserSession(t *testing.T) {
	svc := newMiddlewareJWTService(t)
	token, userID := issueTestToken(t, svc)

	blacklist := auth.NewInMemoryTokenBlacklist()
	require.NoError(t, blacklist.AddUserTokensToBlacklist(context.Background(), userID.String(), time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	router := setupJWTRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestGetJWTClaims_Absent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetJWTClaims(c))
	assert.Empty(t, GetJWTUserID(c))
}
