package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:         "test-secret-key-123456",
		Algorithm:      "HS256",
		DefaultExpiry:  15 * time.Minute,
		ExtendedExpiry: 24 * time.Hour,
		CookieName:     "jwt",
	}
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())

	subjects := []string{"alice@example.com", "bob@example.com"}
	for _, subject := range subjects {
		token, err := issuer.Issue(subject, false)
		if err != nil {
			t.Fatalf("Issue(%q) failed: %v", subject, err)
		}
		got, err := issuer.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if got != subject {
			t.Errorf("Expected subject %q, got %q", subject, got)
		}
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())

	token, err := issuer.IssueWithTTL("alice@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL failed: %v", err)
	}

	_, err = issuer.Verify(token)
	if err == nil {
		t.Fatal("Expected expired token to fail verification")
	}
	if !errors.Is(err, apperr.InvalidToken("")) {
		t.Errorf("Expected InvalidToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-completely-different-secret"
	other := NewTokenIssuer(otherCfg)

	token, err := other.Issue("alice@example.com", false)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, apperr.InvalidToken("")) {
		t.Errorf("Expected InvalidToken for foreign signature, got %v", err)
	}
}

func TestVerifyMalformedTokens(t *testing.T) {
	issuer := NewTokenIssuer(testJWTConfig())

	valid, err := issuer.Issue("alice@example.com", false)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", valid[:len(valid)/2]},
		{"tampered payload", tamper(valid)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Verify(tt.token); !errors.Is(err, apperr.InvalidToken("")) {
				t.Errorf("Expected InvalidToken, got %v", err)
			}
		})
	}
}

func TestExtendedExpiry(t *testing.T) {
	cfg := testJWTConfig()
	issuer := NewTokenIssuer(cfg)

	if got := issuer.TTL(false); got != cfg.DefaultExpiry {
		t.Errorf("Expected default TTL %v, got %v", cfg.DefaultExpiry, got)
	}
	if got := issuer.TTL(true); got != cfg.ExtendedExpiry {
		t.Errorf("Expected extended TTL %v, got %v", cfg.ExtendedExpiry, got)
	}

	// Extended tokens must still roundtrip.
	token, err := issuer.Issue("alice@example.com", true)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if subject, err := issuer.Verify(token); err != nil || subject != "alice@example.com" {
		t.Errorf("Verify returned (%q, %v)", subject, err)
	}
}

func TestZeroExpiryFallsBackToDefault(t *testing.T) {
	cfg := testJWTConfig()
	cfg.DefaultExpiry = 0
	issuer := NewTokenIssuer(cfg)

	if got := issuer.TTL(false); got != DefaultTokenExpiry {
		t.Errorf("Expected fallback TTL %v, got %v", DefaultTokenExpiry, got)
	}
}

// tamper flips the payload segment of a JWT while keeping the signature.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return token
	}
	parts[1] = "eyJzdWIiOiJtYWxsb3J5QGV4YW1wbGUuY29tIn0"
	return strings.Join(parts, ".")
}
