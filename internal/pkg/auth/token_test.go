package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(exp time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "test-issuer",
	})
}

func TestGenerateAndValidateAdminToken(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	token, expiresIn, err := svc.GenerateAdminToken()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestTokenService(-time.Minute)

	token, _, err := svc.GenerateAdminToken()
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := newTestTokenService(time.Hour)
	token, _, err := issuer.GenerateAdminToken()
	require.NoError(t, err)

	verifier := NewTokenService(TokenConfig{
		SecretKey:   "different-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test-issuer",
	})
	_, err = verifier.ValidateAndExtractClaims(token)
	assert.Error(t, err)
}

func TestValidateEmptyToken(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("not.a.token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestHashAndCheckPasscode(t *testing.T) {
	hash, err := HashPasscode("secret-passcode")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-passcode", hash)

	assert.True(t, CheckPasscode("secret-passcode", hash))
	assert.False(t, CheckPasscode("wrong", hash))
	assert.False(t, CheckPasscode("secret-passcode", "not-a-hash"))
}
