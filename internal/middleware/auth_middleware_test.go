package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranraj/fundsphere/internal/pkg/auth"
)

func newSessionService() *auth.SessionService {
	return auth.NewSessionService(auth.SessionConfig{
		SecretKey:       "test-secret",
		SessionDuration: time.Hour,
		TokenIssuer:     "test",
	})
}

func protectedRouter(sessions *auth.SessionService, required ...auth.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("")
	group.Use(SessionAuth(sessions))
	if len(required) > 0 {
		group.Use(RoleRequired(required...))
	}
	group.GET("/protected", func(c *gin.Context) {
		role, _ := SessionRole(c)
		c.JSON(http.StatusOK, gin.H{"role": string(role)})
	})
	return router
}

func TestSessionAuth(t *testing.T) {
	sessions := newSessionService()

	t.Run("no token is rejected", func(t *testing.T) {
		router := protectedRouter(sessions)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("session cookie is accepted", func(t *testing.T) {
		token, _, err := sessions.GenerateToken(auth.RoleAdmin)
		require.NoError(t, err)

		router := protectedRouter(sessions)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "admin")
	})

	t.Run("bearer header works without a cookie", func(t *testing.T) {
		token, _, err := sessions.GenerateToken(auth.RoleDeveloper)
		require.NoError(t, err)

		router := protectedRouter(sessions)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		router := protectedRouter(sessions)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := auth.NewSessionService(auth.SessionConfig{
			SecretKey:       "other-secret",
			SessionDuration: time.Hour,
			TokenIssuer:     "test",
		})
		token, _, err := other.GenerateToken(auth.RoleAdmin)
		require.NoError(t, err)

		router := protectedRouter(sessions)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRoleRequired(t *testing.T) {
	sessions := newSessionService()

	t.Run("admin passes an admin gate", func(t *testing.T) {
		token, _, err := sessions.GenerateToken(auth.RoleAdmin)
		require.NoError(t, err)

		router := protectedRouter(sessions, auth.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("developer passes an admin gate", func(t *testing.T) {
		token, _, err := sessions.GenerateToken(auth.RoleDeveloper)
		require.NoError(t, err)

		router := protectedRouter(sessions, auth.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("admin does not pass a developer gate", func(t *testing.T) {
		token, _, err := sessions.GenerateToken(auth.RoleAdmin)
		require.NoError(t, err)

		router := protectedRouter(sessions, auth.RoleDeveloper)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}
