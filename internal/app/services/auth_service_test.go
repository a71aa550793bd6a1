package services

import (
	"testing"
	"time"

	"github.com/kiranraj/fundsphere/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, adminPassword, devPassword string) AuthService {
	t.Helper()
	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey:       "test-secret",
		SessionDuration: time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthService(sessions, adminPassword, devPassword, zerolog.Nop())
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t, "admin123", "dev123")

	t.Run("correct password opens a session", func(t *testing.T) {
		token, expiresAt, err := svc.Login("admin", "admin123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Login("admin", "nope")
		assert.Error(t, err)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, _, err := svc.Login("superuser", "admin123")
		assert.Error(t, err)
	})

	t.Run("developer role uses its own password", func(t *testing.T) {
		_, _, err := svc.Login("developer", "admin123")
		assert.Error(t, err)

		_, _, err = svc.Login("developer", "dev123")
		assert.NoError(t, err)
	})
}

func TestPasswordMatchesBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, passwordMatches(string(hash), "s3cret"))
	assert.False(t, passwordMatches(string(hash), "other"))
	assert.False(t, passwordMatches("", "anything"))
}
