// Package auth implements the authentication core: JWT issuance and
// verification, password hashing, the cookie auth gate, and the Google
// OAuth2 bridge.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
)

// DefaultTokenExpiry is used when no expiry is configured.
const DefaultTokenExpiry = 15 * time.Minute

// TokenIssuer signs and verifies the bearer tokens that carry a user's
// email as the subject. Tokens are never persisted and expire by time
// only; there is no revocation.
type TokenIssuer struct {
	secret         []byte
	method         *jwt.SigningMethodHMAC
	defaultExpiry  time.Duration
	extendedExpiry time.Duration
}

// NewTokenIssuer builds an issuer from config. Unknown algorithm names
// fall back to HS256.
func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	method := jwt.SigningMethodHS256
	switch cfg.Algorithm {
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	}

	defaultExpiry := cfg.DefaultExpiry
	if defaultExpiry <= 0 {
		defaultExpiry = DefaultTokenExpiry
	}
	extendedExpiry := cfg.ExtendedExpiry
	if extendedExpiry <= 0 {
		extendedExpiry = defaultExpiry
	}

	return &TokenIssuer{
		secret:         []byte(cfg.Secret),
		method:         method,
		defaultExpiry:  defaultExpiry,
		extendedExpiry: extendedExpiry,
	}
}

// Issue signs a token for subject. The TTL is the default expiry, or
// the configured extended expiry when extended is set.
func (t *TokenIssuer) Issue(subject string, extended bool) (string, error) {
	ttl := t.defaultExpiry
	if extended {
		ttl = t.extendedExpiry
	}
	return t.IssueWithTTL(subject, ttl)
}

// IssueWithTTL signs a token for subject with an explicit TTL.
func (t *TokenIssuer) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(t.method, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// TTL returns the lifetime a token issued now would have.
func (t *TokenIssuer) TTL(extended bool) time.Duration {
	if extended {
		return t.extendedExpiry
	}
	return t.defaultExpiry
}

// Verify checks the signature and expiry of tokenString and returns the
// subject. Any failure comes back as an InvalidToken error.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", apperr.InvalidToken("invalid token").WithCause(err)
	}
	if !token.Valid {
		return "", apperr.InvalidToken("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.InvalidToken("invalid token claims")
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", apperr.InvalidToken("token subject missing")
	}
	return subject, nil
}
