package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mertpolat/coursehub/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "coursehub.test",
	})
}

func TestGenerateAccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 7, Email: "instructor@coursehub.app", RoleType: models.RoleInstructor}

	token, expiresIn, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expected 3600s lifetime, got %d", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "instructor@coursehub.app" || claims.RoleType != string(models.RoleInstructor) {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Issuer != "coursehub.test" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	user := &models.User{ID: 7, Email: "instructor@coursehub.app", RoleType: models.RoleInstructor}

	token, _, err := svc.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateAccessToken(&models.User{ID: 7, Email: "a@b.c", RoleType: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour, TokenIssuer: "coursehub.test"})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateAndExtractClaimsRejectsEmpty(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
	if got, _ := ExtractBearerToken("Bearer abc"); got != "abc" {
		t.Fatalf("expected stripped token, got %q", got)
	}
	if got, _ := ExtractBearerToken("abc"); got != "abc" {
		t.Fatalf("expected raw token, got %q", got)
	}
}
