package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranraj/fundsphere/internal/app/models/dto"
	"github.com/kiranraj/fundsphere/internal/middleware"
	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/kiranraj/fundsphere/internal/pkg/auth"
)

type stubAuthService struct {
	token string
	err   error
}

func (s *stubAuthService) Login(role, password string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return s.token, time.Now().Add(time.Hour), nil
}

func TestLogin(t *testing.T) {
	t.Run("sets the session cookie", func(t *testing.T) {
		controller := NewAuthController(&stubAuthService{token: "signed-token"}, false)

		recorder := postJSON(t, controller.Login, "/auth/login", dto.LoginRequest{
			Role:     "admin",
			Password: "secret",
		})

		require.Equal(t, http.StatusOK, recorder.Code)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)

		data := decodeEnvelope(t, recorder)["data"].(map[string]any)
		assert.Equal(t, true, data["authenticated"])
		assert.Equal(t, "admin", data["role"])
	})

	t.Run("wrong password maps to 401", func(t *testing.T) {
		controller := NewAuthController(&stubAuthService{err: apperrors.ErrInvalidCredentials}, false)

		recorder := postJSON(t, controller.Login, "/auth/login", dto.LoginRequest{
			Role:     "admin",
			Password: "wrong",
		})

		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Empty(t, recorder.Result().Cookies())
	})

	t.Run("unknown role rejected by binding", func(t *testing.T) {
		controller := NewAuthController(&stubAuthService{token: "unused"}, false)

		recorder := postJSON(t, controller.Login, "/auth/login", map[string]any{
			"role":     "superuser",
			"password": "secret",
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestSession(t *testing.T) {
	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey:       "test-secret",
		SessionDuration: time.Hour,
		TokenIssuer:     "test",
	})
	controller := NewAuthController(&stubAuthService{}, false)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auth/session", middleware.OptionalSession(sessions), controller.Session)

	t.Run("anonymous caller gets authenticated false", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeEnvelope(t, recorder)["data"].(map[string]any)
		assert.Equal(t, false, data["authenticated"])
	})

	t.Run("session cookie reports the role", func(t *testing.T) {
		token, _, err := sessions.GenerateToken(auth.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeEnvelope(t, recorder)["data"].(map[string]any)
		assert.Equal(t, true, data["authenticated"])
		assert.Equal(t, "admin", data["role"])
	})

	t.Run("expired or invalid token falls back to anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "not-a-token"})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		data := decodeEnvelope(t, recorder)["data"].(map[string]any)
		assert.Equal(t, false, data["authenticated"])
	})
}

func TestLogout(t *testing.T) {
	controller := NewAuthController(&stubAuthService{}, false)

	recorder := postJSON(t, controller.Logout, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}
