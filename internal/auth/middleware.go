package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"blogapi/internal/apperr"
	"blogapi/internal/store"
)

type contextKey int

const identityKey contextKey = iota

// Identity is the resolved caller placed in the request context by the
// gate middleware.
type Identity struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

// IdentityFrom returns the caller identity attached to ctx, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// WithIdentity returns ctx with the identity attached. Exposed for
// handler tests.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Gate authenticates requests from the token cookie and resolves the
// subject against the user store.
type Gate struct {
	Tokens     *TokenIssuer
	Users      *store.UserStore
	CookieName string
	Logger     zerolog.Logger
}

// Resolve reads and verifies the auth cookie and looks up the caller.
// A missing cookie is Unauthenticated; anything else wrong with the
// credential is InvalidCredentials.
func (g *Gate) Resolve(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(g.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, apperr.Unauthenticated("jwt token missing")
	}

	subject, err := g.Tokens.Verify(cookie.Value)
	if err != nil {
		g.Logger.Debug().Err(err).Msg("token verification failed")
		return nil, apperr.InvalidCredentials("invalid credentials")
	}

	user, err := g.Users.GetByEmail(r.Context(), subject)
	if err != nil {
		g.Logger.Debug().Str("subject", subject).Msg("token subject has no user record")
		return nil, apperr.InvalidCredentials("invalid credentials")
	}

	return &Identity{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}, nil
}

// Optional attaches the caller identity when a valid credential is
// present and lets the request through anonymously otherwise.
func (g *Gate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := g.Resolve(r); err == nil {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests without a valid credential.
func (g *Gate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := g.Resolve(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RequireAdmin rejects requests without a valid admin credential.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := g.Resolve(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		if !id.IsAdmin {
			apperr.Write(w, apperr.Forbidden("admin privileges required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
