package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartlinkapp/heartlink-backend/internal/config"
	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

func newTestTokenService() *TokenService {
	return NewTokenService(config.JWTConfig{
		AccessSecret:     "test-access-secret-that-is-long-enough",
		RefreshSecret:    "test-refresh-secret-that-is-long-enough",
		AdminSecret:      "test-admin-secret-that-is-long-enough",
		AccessExpiryMin:  15,
		RefreshExpiryDay: 7,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestTokenService()
	userID := uuid.New()

	token, expiresAt, err := s.GenerateAccessToken(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	got, err := s.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	s := newTestTokenService()
	userID := uuid.New()
	jti := uuid.NewString()

	token, _, err := s.GenerateRefreshToken(userID, jti)
	require.NoError(t, err)

	gotUser, gotJTI, err := s.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, jti, gotJTI)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	s := newTestTokenService()
	userID := uuid.New()

	refresh, _, err := s.GenerateRefreshToken(userID, uuid.NewString())
	require.NoError(t, err)
	access, _, err := s.GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = s.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, _, err = s.ParseRefreshToken(access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAdminTokenUsesSeparateSecret(t *testing.T) {
	s := newTestTokenService()
	adminID := uuid.New()

	token, _, err := s.GenerateAdminToken(adminID, domain.AdminRoleModerator)
	require.NoError(t, err)

	gotID, role, err := s.ParseAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, gotID)
	assert.Equal(t, domain.AdminRoleModerator, role)

	// A user access token never passes admin verification, and vice versa.
	access, _, err := s.GenerateAccessToken(adminID)
	require.NoError(t, err)
	_, _, err = s.ParseAdminToken(access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = s.ParseAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestParseGarbageToken(t *testing.T) {
	s := newTestTokenService()

	_, err := s.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = s.ParseAccessToken("")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTamperedSecretRejected(t *testing.T) {
	s := newTestTokenService()
	other := NewTokenService(config.JWTConfig{
		AccessSecret:     "another-access-secret-entirely-here",
		RefreshSecret:    "another-refresh-secret-entirely-here",
		AdminSecret:      "another-admin-secret-entirely-here",
		AccessExpiryMin:  15,
		RefreshExpiryDay: 7,
	})

	token, _, err := other.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = s.ParseAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
