package config

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "pos")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "pos")
	t.Setenv("JWT_SECRET", "jwt")
}

func TestLoad(t *testing.T) {
	t.Run("missing required keys", func(t *testing.T) {
		t.Setenv("DB_HOST", "")
		t.Setenv("JWT_SECRET", "")
		_, err := Load(zap.NewNop())
		if !errors.Is(err, ErrMissingEnv) {
			t.Fatalf("expected ErrMissingEnv, got %v", err)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		setRequired(t)
		t.Setenv("QZ_ALLOWED_ORIGINS", "")
		t.Setenv("HTTP_CLIENT_TIMEOUT_SECONDS", "")
		t.Setenv("WHATSAPP_API_URL", "")

		cfg, err := Load(zap.NewNop())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.QZ.AllowedOrigins) != 2 {
			t.Fatalf("expected two default origins, got %v", cfg.QZ.AllowedOrigins)
		}
		if cfg.HTTPClientTimeout != 10*time.Second {
			t.Fatalf("expected 10s timeout, got %s", cfg.HTTPClientTimeout)
		}
		if cfg.WhatsApp.Enabled() {
			t.Fatalf("whatsapp must be disabled without credentials")
		}
		if cfg.DB.SSLMode != "disable" {
			t.Fatalf("expected sslmode disable, got %q", cfg.DB.SSLMode)
		}
	})

	t.Run("pem newlines and origins", func(t *testing.T) {
		setRequired(t)
		t.Setenv("QZ_PRIVATE_KEY", `-----BEGIN KEY-----\nabc\n-----END KEY-----`)
		t.Setenv("QZ_ALLOWED_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load(zap.NewNop())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.QZ.PrivateKey != "-----BEGIN KEY-----\nabc\n-----END KEY-----" {
			t.Fatalf("newlines not expanded: %q", cfg.QZ.PrivateKey)
		}
		if cfg.QZ.AllowedOrigins[1] != "https://b.example" {
			t.Fatalf("origins not trimmed: %v", cfg.QZ.AllowedOrigins)
		}
	})
}
