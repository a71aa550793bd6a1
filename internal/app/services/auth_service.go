package services

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/kiranraj/fundsphere/internal/pkg/apperrors"
	"github.com/kiranraj/fundsphere/internal/pkg/auth"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// AuthService opens and validates panel sessions. There are no user
// accounts; a session is just a role proven by its shared password.
type AuthService interface {
	Login(role, password string) (token string, expiresAt time.Time, err error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	sessions          *auth.SessionService
	adminPassword     string
	developerPassword string
	logger            zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(sessions *auth.SessionService, adminPassword, developerPassword string, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		sessions:          sessions,
		adminPassword:     adminPassword,
		developerPassword: developerPassword,
		logger:            logger,
	}
}

// Login checks the role password and issues a signed session token
func (s *authServiceImpl) Login(role, password string) (string, time.Time, error) {
	if !auth.ValidRole(role) {
		return "", time.Time{}, apperrors.NewValidationError("role must be 'admin' or 'developer'")
	}

	expected := s.adminPassword
	if role == string(auth.RoleDeveloper) {
		expected = s.developerPassword
	}

	if !passwordMatches(expected, password) {
		s.logger.Warn().Str("role", role).Msg("Failed panel login attempt")
		return "", time.Time{}, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.GenerateToken(auth.Role(role))
	if err != nil {
		return "", time.Time{}, err
	}

	s.logger.Info().Str("role", role).Time("expiresAt", expiresAt).Msg("Panel session opened")
	return token, expiresAt, nil
}

// passwordMatches compares a submitted password against the configured one.
// Configured values starting with a bcrypt prefix are treated as hashes;
// anything else is compared in constant time.
func passwordMatches(configured, submitted string) bool {
	if configured == "" {
		return false
	}

	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(submitted)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(configured), []byte(submitted)) == 1
}
