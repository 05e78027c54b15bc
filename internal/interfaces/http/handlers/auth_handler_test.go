package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"hackmate.backend/internal/domain/entities"
	domainerrors "hackmate.backend/internal/domain/errors"
	"hackmate.backend/internal/usecases"
	"hackmate.backend/pkg/crypto"
	"hackmate.backend/pkg/jwt"
)

func newAuthRouter(userRepo *userRepoStub) (*gin.Engine, *jwt.JWTService) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	uc := usecases.NewAuthUsecase(userRepo, jwtService)
	h := NewAuthHandler(uc, nil)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	return r, jwtService
}

func TestAuthHandler_Register_Success(t *testing.T) {
	userRepo := &userRepoStub{}
	r, _ := newAuthRouter(userRepo)

	body := `{"email":"dev@hackmate.io","name":"Dev","password":"hunter2hunter2","skills":["go"]}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"email":"dev@hackmate.io"`)
	// The password hash never leaves the server.
	require.NotContains(t, w.Body.String(), "hunter2")
	require.NotContains(t, w.Body.String(), "passwordHash")
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	r, _ := newAuthRouter(&userRepoStub{})

	// Password below the minimum length.
	body := `{"email":"dev@hackmate.io","name":"Dev","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	userRepo := &userRepoStub{
		getByEmailFn: func(context.Context, string) (*entities.User, error) {
			return &entities.User{ID: uuid.New(), Email: "dev@hackmate.io"}, nil
		},
	}
	r, _ := newAuthRouter(userRepo)

	body := `{"email":"dev@hackmate.io","name":"Dev","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login_SuccessAndBadPassword(t *testing.T) {
	hash, err := crypto.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "dev@hackmate.io", Name: "Dev", PasswordHash: hash}

	userRepo := &userRepoStub{
		getByEmailFn: func(context.Context, string) (*entities.User, error) {
			return user, nil
		},
	}
	r, _ := newAuthRouter(userRepo)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"dev@hackmate.io","password":"hunter2hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "accessToken")
	require.Contains(t, w.Body.String(), "refreshToken")

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"dev@hackmate.io","password":"wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestAuthHandler_RefreshToken_BodyAndCookie(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Email: "dev@hackmate.io", Name: "Dev"}
	userRepo := &userRepoStub{
		getByIDFn: func(context.Context, uuid.UUID) (*entities.User, error) {
			return user, nil
		},
	}
	r, jwtService := newAuthRouter(userRepo)

	pair, err := jwtService.GenerateTokenPair(user.ID, user.Email, user.Name)
	require.NoError(t, err)

	// Token in the body.
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"`+pair.RefreshToken+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "accessToken")

	// Token in the cookie only.
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: pair.RefreshToken})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// No token anywhere.
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Garbage token.
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"not.a.token"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	user := &entities.User{ID: userID, Email: "dev@hackmate.io", Name: "Dev"}

	userRepo := &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			if id == userID {
				return user, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, time.Hour)
	h := NewAuthHandler(usecases.NewAuthUsecase(userRepo, jwtService), nil)

	r := gin.New()
	r.GET("/auth/me", authAs(userID), h.GetMe)
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"email":"dev@hackmate.io"`)

	// Deleted user maps to 404.
	r = gin.New()
	r.GET("/auth/me", authAs(uuid.New()), h.GetMe)
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
