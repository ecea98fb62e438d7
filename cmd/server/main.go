// Command server runs the blog API HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/server"
	"blogapi/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("loading config failed")
	}

	log := newLogger(cfg.Log)

	db, err := store.Open(cfg.Database.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database failed")
	}
	if err := store.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrating schema failed")
	}

	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)

	sessions := scs.New()
	sessions.Lifetime = 24 * time.Hour
	sessions.Cookie.HttpOnly = true

	tokens := auth.NewTokenIssuer(cfg.JWT)
	gate := &auth.Gate{
		Tokens:     tokens,
		Users:      users,
		CookieName: cfg.JWT.CookieName,
		Logger:     log,
	}
	google := auth.NewGoogleBridge(cfg.Google, users, tokens, sessions, log)

	srv := server.New(server.Options{
		Logger:       log,
		Sessions:     sessions,
		Users:        users,
		Posts:        posts,
		Categories:   categories,
		Tokens:       tokens,
		Gate:         gate,
		Google:       google,
		CookieName:   cfg.JWT.CookieName,
		CookieSecure: cfg.JWT.CookieSecure,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}
