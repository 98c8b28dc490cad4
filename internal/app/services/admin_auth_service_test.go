package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/auth"
)

func newAdminAuthServiceForTest(t *testing.T, passcode string) *AdminAuthService {
	t.Helper()
	hash, err := auth.HashPasscode(passcode)
	require.NoError(t, err)

	tokenService := auth.NewTokenService(auth.TokenConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})
	return NewAdminAuthService(hash, tokenService)
}

func TestAdminLogin(t *testing.T) {
	svc := newAdminAuthServiceForTest(t, "open-sesame")

	resp, err := svc.Login(context.Background(), "open-sesame")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestAdminLoginWrongPasscode(t *testing.T) {
	svc := newAdminAuthServiceForTest(t, "open-sesame")

	_, err := svc.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPasscode)
}
