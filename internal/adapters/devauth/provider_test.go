package devauth

import (
	"context"
	"strings"
	"testing"

	"github.com/janasethu/civic-api/internal/ports"
)

func TestNewProvider_RequiresIdentity(t *testing.T) {
	if _, err := NewProvider(Config{}); err == nil {
		t.Error("expected error for missing user id")
	}
	if _, err := NewProvider(Config{UserID: "dev-user"}); err == nil {
		t.Error("expected error for missing email")
	}
}

func TestProvider_Begin_ReturnsLocalCallback(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if !strings.HasPrefix(authURL, "/auth/callback?code=dev&state=") {
		t.Errorf("unexpected auth URL: %q", authURL)
	}
	if state == "" || nonce == "" {
		t.Error("expected non-empty state and nonce")
	}
}

func TestProvider_Exchange_ReturnsConfiguredIdentity(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com", Groups: []string{"citizens"}})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	id, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: "s", Nonce: "n"})
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if id.UserID != "dev-user" || id.Email != "dev@example.com" {
		t.Errorf("unexpected identity: %+v", id)
	}
	if id.ExpiresAt.IsZero() {
		t.Error("expected non-zero expiry")
	}
}
