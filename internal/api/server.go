package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/plainrfc/internal/config"
	"github.com/dgallion1/plainrfc/internal/parser"
	"github.com/dgallion1/plainrfc/internal/rfcxml"
	"github.com/dgallion1/plainrfc/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for plainrfc.
type Server struct {
	router      chi.Router
	boilerplate rfcxml.Boilerplate
	opts        parser.Options
	stats       *stats.Latency
	log         *slog.Logger
	cfg         config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(bp rfcxml.Boilerplate, st *stats.Latency, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		boilerplate: bp,
		opts:        parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		stats:       st,
		log:         log,
		cfg:         cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/convert", s.handleConvert)
		r.Post("/api/convert/batch", s.handleBatchConvert)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
