package auth_test

import (
	"testing"
	"time"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	auth.Init("test-secret")

	tokenString, err := auth.GenerateToken("sess-1", "user@example.com", "google", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken err: %v", err)
	}

	claims, err := auth.ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken err: %v", err)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("unexpected session id: %s", claims.SessionID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("unexpected email: %s", claims.Email)
	}
	if claims.Provider != "google" {
		t.Errorf("unexpected provider: %s", claims.Provider)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	auth.Init("test-secret")

	tokenString, err := auth.GenerateToken("sess-1", "user@example.com", "google", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken err: %v", err)
	}
	if _, err := auth.ValidateToken(tokenString); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	auth.Init("test-secret")
	tokenString, err := auth.GenerateToken("sess-1", "user@example.com", "google", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken err: %v", err)
	}

	auth.Init("other-secret")
	if _, err := auth.ValidateToken(tokenString); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	auth.Init("test-secret")
	if _, err := auth.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
