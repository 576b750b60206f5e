package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp, refreshExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		AccessSecret:    "access-secret-for-tests",
		RefreshSecret:   "refresh-secret-for-tests",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     "hostelease.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	access, refresh, err := svc.GenerateTokenPair(42, "WARDEN")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "WARDEN", claims.Role)
	assert.Equal(t, "hostelease.test", claims.Issuer)

	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), refreshClaims.UserID)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	access, refresh, err := svc.GenerateTokenPair(1, "STUDENT")
	require.NoError(t, err)

	// A refresh token must not pass access validation, and vice versa
	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenFromDifferentService(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)
	other := NewJWTService(JWTConfig{
		AccessSecret:    "completely-different-secret",
		RefreshSecret:   "another-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "hostelease.test",
	})

	access, _, err := svc.GenerateTokenPair(7, "ADMIN")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute, 24*time.Hour)

	access, _, err := svc.GenerateTokenPair(7, "STUDENT")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateEmptyToken(t *testing.T) {
	svc := newTestJWTService(time.Hour, 24*time.Hour)

	_, err := svc.ValidateAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// Raw token without the prefix is accepted as-is
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
