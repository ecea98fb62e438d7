package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"blogapi/internal/models"
	"blogapi/internal/store"
)

func newTestGate(t *testing.T) (*Gate, *store.UserStore) {
	t.Helper()
	users := store.NewUserStore(newTestDB(t))
	gate := &Gate{
		Tokens:     NewTokenIssuer(testJWTConfig()),
		Users:      users,
		CookieName: "jwt",
		Logger:     zerolog.Nop(),
	}
	return gate, users
}

func seedUser(t *testing.T, users *store.UserStore, email, username string, admin bool) *models.User {
	t.Helper()
	user := &models.User{Email: email, Username: username, IsAdmin: admin}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

func TestGateRequire(t *testing.T) {
	gate, users := newTestGate(t)
	seedUser(t, users, "alice@example.com", "alice", false)

	validToken, err := gate.Tokens.Issue("alice@example.com", false)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "missing cookie",
			cookie:     "",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "jwt token missing",
		},
		{
			name:       "garbage token",
			cookie:     "not-a-token",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "invalid credentials",
		},
		{
			name:       "valid token unknown subject",
			cookie:     mustIssue(t, gate.Tokens, "ghost@example.com"),
			wantStatus: http.StatusUnauthorized,
			wantDetail: "invalid credentials",
		},
		{
			name:       "valid token",
			cookie:     validToken,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *Identity
			handler := gate.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = IdentityFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "jwt", Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d. Body: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantDetail != "" && !strings.Contains(rr.Body.String(), tt.wantDetail) {
				t.Errorf("Expected detail %q, got: %s", tt.wantDetail, rr.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if got == nil || got.Email != "alice@example.com" {
					t.Errorf("Expected identity for alice, got %+v", got)
				}
			}
		})
	}
}

func TestGateRequireAdmin(t *testing.T) {
	gate, users := newTestGate(t)
	seedUser(t, users, "alice@example.com", "alice", false)
	seedUser(t, users, "root@example.com", "root", true)

	tests := []struct {
		name       string
		subject    string
		wantStatus int
	}{
		{"non-admin", "alice@example.com", http.StatusForbidden},
		{"admin", "root@example.com", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := gate.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.AddCookie(&http.Cookie{Name: "jwt", Value: mustIssue(t, gate.Tokens, tt.subject)})
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestGateOptional(t *testing.T) {
	gate, users := newTestGate(t)
	seedUser(t, users, "alice@example.com", "alice", false)

	var got *Identity
	var present bool
	handler := gate.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, present = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Anonymous request passes through without identity.
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected anonymous request to pass, got %d", rr.Code)
	}
	if present {
		t.Errorf("Expected no identity for anonymous request, got %+v", got)
	}

	// Authenticated request carries the identity.
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: mustIssue(t, gate.Tokens, "alice@example.com")})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if !present || got == nil || got.Email != "alice@example.com" {
		t.Errorf("Expected identity for alice, got %+v", got)
	}
}

func mustIssue(t *testing.T, issuer *TokenIssuer, subject string) string {
	t.Helper()
	token, err := issuer.Issue(subject, false)
	if err != nil {
		t.Fatalf("Issue(%q) failed: %v", subject, err)
	}
	return token
}
