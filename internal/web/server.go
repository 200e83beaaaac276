// Package web serves drills over HTTP. Each learner is identified by a
// signed cookie and keeps one session per activity in the configured
// backend.
package web

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/session"
	"github.com/abhisek/mathdrills/internal/tutor"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	catalog   *activity.Catalog
	engines   map[string]*session.Engine
	backend   session.Backend
	tutor     *tutor.Explainer
	cookies   *sessions.CookieStore
	cookie    string
	templates *template.Template
	health    func(context.Context) error
	logger    *slog.Logger

	engineOpts []session.Option
}

// Option configures a Server.
type Option func(*Server) error

// WithCookie sets the learner cookie name, signing secret and Secure flag.
// An empty secret generates a random key, so cookies do not survive a
// restart.
func WithCookie(name, secret string, secure bool) Option {
	return func(s *Server) error {
		key := []byte(secret)
		if len(key) == 0 {
			key = make([]byte, 32)
			if _, err := rand.Read(key); err != nil {
				return fmt.Errorf("generate cookie key: %w", err)
			}
		}
		store := sessions.NewCookieStore(key)
		store.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   30 * 24 * 60 * 60,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		}
		s.cookies, s.cookie = store, name
		return nil
	}
}

// WithTutor enables the explain action.
func WithTutor(t *tutor.Explainer) Option {
	return func(s *Server) error {
		s.tutor = t
		return nil
	}
}

// WithHealthCheck adds a dependency check to /healthz.
func WithHealthCheck(fn func(context.Context) error) Option {
	return func(s *Server) error {
		s.health = fn
		return nil
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = l
		return nil
	}
}

// WithEngineOptions passes options to every activity engine.
func WithEngineOptions(opts ...session.Option) Option {
	return func(s *Server) error {
		s.engineOpts = append(s.engineOpts, opts...)
		return nil
	}
}

// New builds a Server for the enabled activities of catalog.
func New(catalog *activity.Catalog, backend session.Backend, opts ...Option) (*Server, error) {
	if catalog == nil || backend == nil {
		return nil, errors.New("web: catalog and backend are required")
	}
	s := &Server{
		catalog: catalog,
		backend: backend,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	if s.cookies == nil {
		if err := WithCookie("mathdrills", "", false)(s); err != nil {
			return nil, err
		}
	}
	if s.tutor == nil {
		s.tutor = tutor.New(nil, tutor.WithLogger(s.logger))
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	s.templates = tmpl

	s.engines = make(map[string]*session.Engine)
	for _, a := range catalog.All() {
		opts := append([]session.Option{session.WithLogger(s.logger.With("activity", a.ID))}, s.engineOpts...)
		s.engines[a.ID] = session.NewEngine(a, opts...)
	}
	return s, nil
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recoveryMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.learnerMiddleware)

		r.Get("/", s.handleHome)
		r.Get("/a/{id}", s.handleActivity)
		r.Post("/a/{id}/answer", s.handleAnswer)
		r.Post("/a/{id}/next", s.handleNext)
		r.Post("/a/{id}/explain", s.handleExplain)
		r.Post("/a/{id}/restart", s.handleRestart)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, "Page not found.")
	})
	return r
}
