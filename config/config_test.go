package config

import (
	"testing"

	env "github.com/caarlos0/env/v11"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "password", input: "password", expected: AuthModePassword},
		{name: "oauth", input: "oauth", expected: AuthModeOAuth},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase normalized", input: "OAUTH", expected: AuthModeOAuth},
		{name: "invalid mode", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModePassword {
		t.Errorf("expected default auth mode password, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.ElevationTTL.Hours() != 8 {
		t.Errorf("expected default elevation TTL 8h, got %s", cfg.Auth.ElevationTTL)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("expected default db port 5432, got %d", cfg.Postgres.Port)
	}
}

func TestHTTPConfig_Sanitize_ClampsCompressionLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		expected int
	}{
		{name: "below range", level: 0, expected: 1},
		{name: "above range", level: 12, expected: 9},
		{name: "in range", level: 6, expected: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HTTPConfig{CompressionLevel: tt.level}
			h.Sanitize()
			if h.CompressionLevel != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, h.CompressionLevel)
			}
		})
	}
}

func TestUploadConfig_Sanitize_Defaults(t *testing.T) {
	var u UploadConfig
	u.Sanitize()

	if u.Dir != "./uploads" {
		t.Errorf("expected default dir ./uploads, got %q", u.Dir)
	}
	if u.MaxSizeBytes != 5<<20 {
		t.Errorf("expected default max size %d, got %d", 5<<20, u.MaxSizeBytes)
	}
	if u.PublicPath != "/uploads" {
		t.Errorf("expected default public path /uploads, got %q", u.PublicPath)
	}
}
