package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BLOGAPI_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected default addr :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.JWT.Algorithm != "HS256" {
		t.Errorf("Expected default algorithm HS256, got %q", cfg.JWT.Algorithm)
	}
	if cfg.JWT.DefaultExpiry != 15*time.Minute {
		t.Errorf("Expected default expiry 15m, got %v", cfg.JWT.DefaultExpiry)
	}
	if cfg.JWT.CookieName != "jwt" {
		t.Errorf("Expected default cookie name jwt, got %q", cfg.JWT.CookieName)
	}
	if cfg.JWT.CookieSecure {
		t.Error("Expected cookie secure to default off")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level info, got %q", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BLOGAPI_JWT_SECRET", "test-secret")
	t.Setenv("BLOGAPI_HTTP_ADDR", ":9090")
	t.Setenv("BLOGAPI_JWT_ALGORITHM", "HS512")
	t.Setenv("BLOGAPI_JWT_EXPIRY_MINUTES", "30")
	t.Setenv("BLOGAPI_JWT_COOKIE_SECURE", "true")
	t.Setenv("BLOGAPI_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected addr :9090, got %q", cfg.HTTPAddr)
	}
	if cfg.JWT.Algorithm != "HS512" {
		t.Errorf("Expected algorithm HS512, got %q", cfg.JWT.Algorithm)
	}
	if cfg.JWT.DefaultExpiry != 30*time.Minute {
		t.Errorf("Expected expiry 30m, got %v", cfg.JWT.DefaultExpiry)
	}
	if !cfg.JWT.CookieSecure {
		t.Error("Expected cookie secure on")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.Log.Level)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("BLOGAPI_JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected missing secret to fail validation")
	}
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	t.Setenv("BLOGAPI_JWT_SECRET", "test-secret")
	t.Setenv("BLOGAPI_JWT_ALGORITHM", "RS256")

	if _, err := Load(); err == nil {
		t.Fatal("Expected asymmetric algorithm to fail validation")
	}
}
