package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/mertpolat/coursehub/internal/pkg/auth"
	"github.com/mertpolat/coursehub/internal/pkg/logger"
)

// UserFinder is the user lookup surface the auth service needs.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	users      UserFinder
	jwtService *pkgauth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserFinder, jwtService *pkgauth.JWTService) AuthService {
	return &authServiceImpl{
		users:      users,
		jwtService: jwtService,
	}
}

// Login verifies the credentials and issues an access token carrying the
// principal's id and role.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !pkgauth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the stamp is informational.
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User logged in")
	return &dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
		UserID:      user.ID,
		RoleType:    string(user.RoleType),
	}, nil
}
