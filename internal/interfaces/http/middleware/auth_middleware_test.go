package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"hackmate.backend/pkg/jwt"
	"hackmate.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	os.Exit(m.Run())
}

func authTestRouter(jwtService *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		email, _ := GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String(), "email": email})
	})
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	r := authTestRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestAuthMiddleware_BadScheme(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	r := authTestRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	r := authTestRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+"not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_WrongSigningKey(t *testing.T) {
	signer := jwt.NewJWTService("other-secret", 15*time.Minute, time.Hour)
	pair, err := signer.GenerateTokenPair(uuid.New(), "dev@hackmate.io", "Dev")
	require.NoError(t, err)

	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	r := authTestRouter(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", -time.Minute, time.Hour)
	pair, err := jwtService.GenerateTokenPair(uuid.New(), "dev@hackmate.io", "Dev")
	require.NoError(t, err)

	r := authTestRouter(jwtService)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "dev@hackmate.io", "Dev")
	require.NoError(t, err)

	r := authTestRouter(jwtService)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
	require.Contains(t, w.Body.String(), "dev@hackmate.io")
}

func TestGetUserID_MissingAndWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	require.False(t, ok)

	c.Set(UserIDKey, "not-a-uuid-value")
	_, ok = GetUserID(c)
	require.False(t, ok)

	id := uuid.New()
	c.Set(UserIDKey, id)
	got, ok := GetUserID(c)
	require.True(t, ok)
	require.Equal(t, id, got)
}
