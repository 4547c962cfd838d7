// Package api implements the HTTP layer for the pipeline snapshot mail relay.
// Handlers are methods on *Server. Each handler file is responsible for one
// route group and only imports the dependencies it actually uses.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nyashahama/pipeline-snapshot-mailer/internal/email"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// Env is "production", "staging", or "development". Echoed by /health.
	Env string

	// SendGridConfigured reports whether a provider API key is present.
	// Echoed by /logs; sends still go through the gateway either way and
	// fail there when the key is missing.
	SendGridConfigured bool

	// MaxBodyBytes caps the /send-pdf-email request body. Zero means the
	// 50 MB default.
	MaxBodyBytes int64
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// mailer delivers the composed message through the provider. This is the
	// one network call in the system.
	mailer email.Sender

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(mailer email.Sender, cfg Config, logger *slog.Logger) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 50 << 20
	}

	s := &Server{
		mailer: mailer,
		cfg:    cfg,
		logger: logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(s.recoverer)
	r.Use(s.corsMiddleware)

	// ── Routes ────────────────────────────────────────────────────────────────
	// All three routes are stateless and independent; no route depends on
	// prior requests.
	r.Post("/send-pdf-email", s.handleSendPDFEmail)
	r.Get("/health", s.handleHealth)
	r.Get("/logs", s.handleLogs)

	return r
}
