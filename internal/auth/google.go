package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"blogapi/internal/apperr"
	"blogapi/internal/config"
	"blogapi/internal/models"
	"blogapi/internal/store"
)

const oauthStateSessionKey = "oauthState"

// Profile is the subset of the provider's userinfo the bridge needs.
type Profile struct {
	Email      string
	GivenName  string
	FamilyName string
}

// GoogleBridge drives the Google OAuth2 login flow: it hands out the
// authorization URL, exchanges the callback code for a provider token,
// fetches the profile, finds or creates the local user, and issues a
// local token for it.
type GoogleBridge struct {
	Users    *store.UserStore
	Tokens   *TokenIssuer
	Sessions *scs.SessionManager
	Logger   zerolog.Logger

	oauth *oauth2.Config

	// Test seams: an alternate HTTP client for the exchange and an
	// alternate userinfo endpoint.
	HTTPClient       *http.Client
	UserinfoEndpoint string
}

func NewGoogleBridge(cfg config.GoogleConfig, users *store.UserStore, tokens *TokenIssuer, sessions *scs.SessionManager, logger zerolog.Logger) *GoogleBridge {
	return &GoogleBridge{
		Users:    users,
		Tokens:   tokens,
		Sessions: sessions,
		Logger:   logger,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// SetEndpoint overrides the provider endpoints. Used by tests to point
// the exchange at a fake provider.
func (g *GoogleBridge) SetEndpoint(ep oauth2.Endpoint) {
	g.oauth.Endpoint = ep
}

// LoginURL stores a fresh state value in the session and returns the
// provider's authorization URL.
func (g *GoogleBridge) LoginURL(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", apperr.Internal(err)
	}
	g.Sessions.Put(ctx, oauthStateSessionKey, state)
	return g.oauth.AuthCodeURL(state), nil
}

// Exchange runs the callback half of the flow and returns the resolved
// local user. Provider failures and malformed profiles surface as
// InvalidExchange.
func (g *GoogleBridge) Exchange(ctx context.Context, state, code string) (*models.User, error) {
	saved := g.Sessions.PopString(ctx, oauthStateSessionKey)
	if saved != "" && saved != state {
		return nil, apperr.InvalidExchange("invalid oauth state")
	}
	if code == "" {
		return nil, apperr.InvalidExchange("authorization code missing")
	}

	if g.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, g.HTTPClient)
	}
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		g.Logger.Warn().Err(err).Msg("oauth code exchange failed")
		return nil, apperr.InvalidExchange("Invalid token exchange").WithCause(err)
	}

	profile, err := g.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	return g.ensureUser(ctx, profile)
}

// fetchProfile retrieves the userinfo document for token via the typed
// Google client.
func (g *GoogleBridge) fetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	opts := []option.ClientOption{option.WithHTTPClient(g.oauth.Client(ctx, token))}
	if g.UserinfoEndpoint != "" {
		opts = append(opts, option.WithEndpoint(g.UserinfoEndpoint))
	}
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, apperr.InvalidExchange("Invalid token exchange").WithCause(err)
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		g.Logger.Warn().Err(err).Msg("userinfo fetch failed")
		return nil, apperr.InvalidExchange("Invalid token exchange").WithCause(err)
	}
	if info.Email == "" {
		return nil, apperr.InvalidExchange("provider profile missing email")
	}
	return &Profile{Email: info.Email, GivenName: info.GivenName, FamilyName: info.FamilyName}, nil
}

// ensureUser finds the local user for the profile's email, creating one
// on first login. A duplicate on insert means either a concurrent first
// login won the race on the email, or the synthesized username belongs
// to another account; the first resolves to the winner's record, the
// second moves on to the next username candidate.
func (g *GoogleBridge) ensureUser(ctx context.Context, profile *Profile) (*models.User, error) {
	user, err := g.Users.GetByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperr.NotFound("")) {
		return nil, err
	}

	for _, username := range usernameCandidates(profile) {
		user = &models.User{
			Email:    profile.Email,
			Username: username,
		}
		err := g.Users.Create(ctx, user)
		if err == nil {
			g.Logger.Info().Str("email", user.Email).Msg("created user from oauth login")
			return user, nil
		}
		if !errors.Is(err, apperr.DuplicateUser("")) {
			return nil, err
		}
		if winner, gerr := g.Users.GetByEmail(ctx, profile.Email); gerr == nil {
			return winner, nil
		}
		// The email is still free, so the username is taken.
	}
	return nil, apperr.Internal(fmt.Errorf("no available username for %s", profile.Email))
}

// usernameCandidates lists the usernames to try for a first login, most
// preferred first: the provider names, the email local part, then
// numbered variants of it.
func usernameCandidates(profile *Profile) []string {
	local, _, _ := strings.Cut(profile.Email, "@")

	var candidates []string
	name := strings.TrimSpace(strings.TrimSpace(profile.GivenName) + " " + strings.TrimSpace(profile.FamilyName))
	if name != "" {
		candidates = append(candidates, name)
	}
	if local != name {
		candidates = append(candidates, local)
	}
	for i := 2; i <= 5; i++ {
		candidates = append(candidates, fmt.Sprintf("%s%d", local, i))
	}
	return candidates
}

func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
