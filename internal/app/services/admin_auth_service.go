package services

import (
	"context"

	"github.com/emre/notesphere/internal/app/models/dto"
	"github.com/emre/notesphere/internal/pkg/apperrors"
	"github.com/emre/notesphere/internal/pkg/auth"
	"github.com/emre/notesphere/internal/pkg/logger"
)

// AdminAuthService authenticates the single shared admin passcode and issues
// session tokens.
type AdminAuthService struct {
	passcodeHash string
	tokenService *auth.TokenService
}

// NewAdminAuthService creates a new admin auth service instance
func NewAdminAuthService(passcodeHash string, tokenService *auth.TokenService) *AdminAuthService {
	return &AdminAuthService{
		passcodeHash: passcodeHash,
		tokenService: tokenService,
	}
}

// Login verifies the passcode and returns a signed admin token
func (s *AdminAuthService) Login(ctx context.Context, passcode string) (*dto.AdminLoginResponse, error) {
	if !auth.CheckPasscode(passcode, s.passcodeHash) {
		logger.Warn().Msg("Admin login attempt with invalid passcode")
		return nil, apperrors.ErrInvalidPasscode
	}

	token, expiresIn, err := s.tokenService.GenerateAdminToken()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate admin token")
		return nil, err
	}

	return &dto.AdminLoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}
