// Package server exposes saved layouts and builder verbs over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /layouts
//	GET    /layouts/{name}            template JSON (?format=toml for TOML)
//	PUT    /layouts/{name}            replace from a template body
//	DELETE /layouts/{name}
//	POST   /layouts/{name}/children   place a leaf by gravity/group
//	POST   /layouts/{name}/simplify
//	GET    /layouts/{name}/dot        Graphviz source (?format=svg for SVG)
//
// Edits to one layout are serialized: each edit loads, applies a builder
// transaction and saves while holding that layout's lock.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openopus/ng-pane-manager2-sub000/pkg/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves the layout API.
type Server struct {
	layouts *store.Layouts
	logger  *log.Logger
	locks   *keyedMutex
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and edit logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server over layouts.
func New(layouts *store.Layouts, opts ...Option) *Server {
	s := &Server{
		layouts: layouts,
		logger:  log.Default(),
		locks:   newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/layouts", func(r chi.Router) {
		r.Get("/", s.listLayouts)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.getLayout)
			r.Put("/", s.putLayout)
			r.Delete("/", s.deleteLayout)
			r.Post("/children", s.placeChild)
			r.Post("/simplify", s.simplifyLayout)
			r.Get("/dot", s.layoutDOT)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
