package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mertpolat/coursehub/internal/app/models"
	"github.com/mertpolat/coursehub/internal/app/models/dto"
	"github.com/mertpolat/coursehub/internal/pkg/apperrors"
	pkgauth "github.com/mertpolat/coursehub/internal/pkg/auth"
)

type fakeUserFinder struct {
	users       map[string]*models.User
	lastLoginOf []int64
}

func (f *fakeUserFinder) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserFinder) UpdateLastLogin(_ context.Context, id int64) error {
	f.lastLoginOf = append(f.lastLoginOf, id)
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeUserFinder, *pkgauth.JWTService) {
	t.Helper()
	hashed, err := pkgauth.HashPassword("learn1234")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &fakeUserFinder{users: map[string]*models.User{
		"student@coursehub.app": {
			ID:       3,
			Email:    "student@coursehub.app",
			Password: hashed,
			RoleType: models.RoleStudent,
			IsActive: true,
		},
	}}
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
	return NewAuthService(users, jwtService), users, jwtService
}

func TestLoginIssuesAccessToken(t *testing.T) {
	svc, users, jwtService := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@coursehub.app",
		Password: "learn1234",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.UserID != 3 || resp.RoleType != string(models.RoleStudent) {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.ExpiresIn != 3600 {
		t.Fatalf("expected 3600s lifetime, got %d", resp.ExpiresIn)
	}

	// The issued token must round-trip through the middleware's validation.
	claims, err := jwtService.ValidateAndExtractClaims(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != 3 || claims.RoleType != string(models.RoleStudent) {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if len(users.lastLoginOf) != 1 || users.lastLoginOf[0] != 3 {
		t.Fatalf("expected last-login stamp for user 3, got %v", users.lastLoginOf)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@coursehub.app",
		Password: "wrong-password",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@coursehub.app",
		Password: "learn1234",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	users.users["student@coursehub.app"].IsActive = false

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@coursehub.app",
		Password: "learn1234",
	})
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("expected account disabled, got %v", err)
	}
}
