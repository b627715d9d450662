package auth_test

import (
	"errors"
	"testing"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/auth"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/config"
)

func newTestRegistry() *auth.Registry {
	return auth.NewRegistry(config.OAuthConfig{
		Google: config.ProviderConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost:8080/auth/google/callback",
		},
		MSTenant:        "common",
		ZohoAccountsURL: "https://accounts.zoho.com",
	})
}

func TestRegistryGetConfiguredProvider(t *testing.T) {
	reg := newTestRegistry()

	provider, err := reg.Get("google")
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if provider.Name() != "google" {
		t.Fatalf("unexpected provider: %s", provider.Name())
	}

	url := provider.AuthCodeURL("state-123")
	if url == "" {
		t.Fatal("expected non-empty authorize URL")
	}
}

func TestRegistryRejectsUnsupportedProvider(t *testing.T) {
	reg := newTestRegistry()

	if _, err := reg.Get("github"); !errors.Is(err, auth.ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestRegistryRejectsUnconfiguredProvider(t *testing.T) {
	reg := newTestRegistry()

	// zoho는 지원 대상이지만 클라이언트 설정이 없음
	if _, err := reg.Get("zoho"); !errors.Is(err, auth.ErrProviderDisabled) {
		t.Fatalf("expected ErrProviderDisabled, got %v", err)
	}
	if _, err := reg.Get("microsoft"); !errors.Is(err, auth.ErrProviderDisabled) {
		t.Fatalf("expected ErrProviderDisabled, got %v", err)
	}
}
