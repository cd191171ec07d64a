package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/langmarket/api/model"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret-at-least-32-characters!!",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "langmarket-test",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := testManager()

	token, jti, err := manager.GenerateAccessToken(42, "admin@example.com", model.RoleAdmin, 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty JTI")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("unexpected role %q", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("expected access token type, got %q", claims.TokenType)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("expected token version 3, got %d", claims.TokenVersion)
	}
	if claims.Issuer != "langmarket-test" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := testManager().GenerateAccessToken(1, "a@b.com", model.RoleAdmin, 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	other := NewJWTManager(JWTConfig{Secret: "completely-different-secret-value!!!", Expiry: time.Hour})
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret: "test-secret-at-least-32-characters!!",
		Expiry: -time.Minute,
	})

	token, _, err := manager.GenerateAccessToken(1, "a@b.com", model.RoleAdmin, 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := testManager().ValidateToken("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshAccessToken(t *testing.T) {
	manager := testManager()

	refresh, _, err := manager.GenerateRefreshToken(9, "admin@example.com", model.RoleAdmin, 1)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	access, _, err := manager.RefreshAccessToken(refresh, 1)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}

	claims, err := manager.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.TokenType != "access" {
		t.Fatalf("expected an access token, got %q", claims.TokenType)
	}
	if claims.UserID != 9 {
		t.Fatalf("expected user id 9, got %d", claims.UserID)
	}
}

func TestRefreshAccessTokenRejectsAccessToken(t *testing.T) {
	manager := testManager()

	access, _, err := manager.GenerateAccessToken(9, "admin@example.com", model.RoleAdmin, 1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, _, err := manager.RefreshAccessToken(access, 1); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("an access token must not mint new access tokens, got %v", err)
	}
}
