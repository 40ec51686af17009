package jwt

import (
	"testing"
	"time"

	"devs-society/backend/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:     "test-secret-key-for-unit-testing-2026",
		UserTokenTTL:  7 * 24 * time.Hour,
		AdminTokenTTL: 8 * time.Hour,
	})
}

func TestGenerateAndParseUserToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateUserToken("user-1", "core-member")
	if err != nil {
		t.Fatalf("GenerateUserToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.SubjectID != "user-1" {
		t.Errorf("expected SubjectID=user-1, got %s", claims.SubjectID)
	}
	if claims.TokenType != TypeUser {
		t.Errorf("expected TokenType=user, got %s", claims.TokenType)
	}
	if claims.Issuer != "devs-society" {
		t.Errorf("expected Issuer=devs-society, got %s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI must not be empty")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 6*24*time.Hour || ttl > 8*24*time.Hour {
		t.Errorf("user token TTL should be about 7 days, got %v", ttl)
	}
}

func TestGenerateAdminToken_CarriesScope(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAdminToken("admin-1", "admin", []string{"events.read"}, "college-1")
	if err != nil {
		t.Fatalf("GenerateAdminToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.TokenType != TypeAdmin {
		t.Errorf("expected TokenType=admin, got %s", claims.TokenType)
	}
	if claims.CollegeID != "college-1" {
		t.Errorf("expected CollegeID=college-1, got %s", claims.CollegeID)
	}
	if len(claims.Permissions) != 1 || claims.Permissions[0] != "events.read" {
		t.Errorf("unexpected permissions: %v", claims.Permissions)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("invalid.token.string"); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:    "different-secret-key",
		UserTokenTTL: time.Hour,
	})

	token, _ := m1.GenerateUserToken("user-1", "other")
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("a token signed with another key must be rejected")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:     "test-secret",
		AdminTokenTTL: -time.Minute,
	})

	token, _ := m.GenerateAdminToken("admin-1", "super-admin", nil, "")

	_, err := m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
