// Package server wires the HTTP surface: the gorilla/mux router, the
// middleware chain and the JSON resource handlers.
package server

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"blogapi/internal/auth"
	"blogapi/internal/store"
)

// Server holds the handler dependencies and the configured router.
type Server struct {
	router   *mux.Router
	sessions *scs.SessionManager
	log      zerolog.Logger
	validate *validator.Validate

	users      *store.UserStore
	posts      *store.PostStore
	categories *store.CategoryStore

	tokens       *auth.TokenIssuer
	gate         *auth.Gate
	google       *auth.GoogleBridge
	cookieName   string
	cookieSecure bool
}

// Options collects the injected dependencies for New.
type Options struct {
	Logger       zerolog.Logger
	Sessions     *scs.SessionManager
	Users        *store.UserStore
	Posts        *store.PostStore
	Categories   *store.CategoryStore
	Tokens       *auth.TokenIssuer
	Gate         *auth.Gate
	Google       *auth.GoogleBridge
	CookieName   string
	CookieSecure bool
}

func New(opts Options) *Server {
	s := &Server{
		sessions:     opts.Sessions,
		log:          opts.Logger,
		validate:     validator.New(),
		users:        opts.Users,
		posts:        opts.Posts,
		categories:   opts.Categories,
		tokens:       opts.Tokens,
		gate:         opts.Gate,
		google:       opts.Google,
		cookieName:   opts.CookieName,
		cookieSecure: opts.CookieSecure,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(Recover(s.log))

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	ar := r.PathPrefix("/auth").Subrouter()
	ar.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	ar.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet, http.MethodPost)
	ar.HandleFunc("/google", s.handleGoogleLogin).Methods(http.MethodGet)
	ar.HandleFunc("/callback", s.handleGoogleCallback).Methods(http.MethodGet)

	r.Handle("/users/me", s.gate.Require(http.HandlerFunc(s.handleCurrentUser))).Methods(http.MethodGet)
	r.Handle("/users", s.gate.RequireAdmin(http.HandlerFunc(s.handleListUsers))).Methods(http.MethodGet)
	r.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", s.handleUpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id:[0-9]+}", s.handleDeleteUser).Methods(http.MethodDelete)

	r.Handle("/posts", s.gate.Optional(http.HandlerFunc(s.handleListPosts))).Methods(http.MethodGet)
	r.Handle("/posts", s.gate.Require(http.HandlerFunc(s.handleCreatePost))).Methods(http.MethodPost)
	r.Handle("/posts/{id:[0-9]+}", s.gate.Optional(http.HandlerFunc(s.handleGetPost))).Methods(http.MethodGet)
	r.Handle("/posts/{id:[0-9]+}", s.gate.Require(http.HandlerFunc(s.handleUpdatePost))).Methods(http.MethodPut)
	r.Handle("/posts/{id:[0-9]+}", s.gate.Require(http.HandlerFunc(s.handleDeletePost))).Methods(http.MethodDelete)

	r.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id:[0-9]+}", s.handleGetCategory).Methods(http.MethodGet)
	r.Handle("/categories", s.gate.RequireAdmin(http.HandlerFunc(s.handleCreateCategory))).Methods(http.MethodPost)
	r.Handle("/categories/{id:[0-9]+}", s.gate.RequireAdmin(http.HandlerFunc(s.handleUpdateCategory))).Methods(http.MethodPut)
	r.Handle("/categories/{id:[0-9]+}", s.gate.RequireAdmin(http.HandlerFunc(s.handleDeleteCategory))).Methods(http.MethodDelete)

	return r
}

// Handler returns the full handler chain, with session load/save
// outermost so every request has a session context.
func (s *Server) Handler() http.Handler {
	return s.sessions.LoadAndSave(s.router)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"message": "Welcome to BlogAPI"})
}

// setAuthCookie sets the token cookie read by the auth gate.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now(),
		HttpOnly: true,
		Secure:   s.cookieSecure,
	})
}
