// ABOUTME: hellopage HTTP server: the static greeting page at "/" behind a chi router.
// ABOUTME: Also exposes /health and the embedded stylesheet; unknown paths fall through to chi's 404.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/2389-research/hellopage/page"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// DefaultAddr is the listen address used when ServerConfig.Addr is empty.
const DefaultAddr = "127.0.0.1:3000"

// DefaultShutdownTimeout bounds how long in-flight requests may take to drain.
const DefaultShutdownTimeout = 5 * time.Second

// Server serves the static greeting page.
type Server struct {
	page            *StaticPage
	router          chi.Router
	addr            string
	instance        string
	shutdownTimeout time.Duration
}

// ServerConfig holds the configuration for the web server.
type ServerConfig struct {
	Addr            string          // listen address (default: "127.0.0.1:3000")
	Page            page.Definition // document served at "/"
	ShutdownTimeout time.Duration   // default: 5s
}

// NewServer renders the configured page and sets up routing. It fails when
// the page cannot be rendered, so a broken definition never starts serving.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}

	static, err := NewStaticPage(tmpl, cfg.Page)
	if err != nil {
		return nil, err
	}

	s := &Server{
		page:            static,
		addr:            cfg.Addr,
		instance:        uuid.New().String(),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	s.router = s.buildRouter()
	return s, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled. A clean shutdown
// returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestID)
	r.Use(webRequestLogger)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/", s.page)
	r.Method(http.MethodHead, "/", s.page)
	r.Get("/health", s.handleHealth)

	r.Get(StylesheetPath, s.handleStylesheet)

	return r
}

// handleStylesheet serves the embedded application stylesheet. Only this one
// file is routed, so /static/ paths never produce directory listings.
func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, StaticFS, stylesheetFile)
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"instance": s.instance,
		"page":     s.page.Name(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
