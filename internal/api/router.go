// Package api provides the REST API of the cantocalc service.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ternarybob/arbor"

	"github.com/piwi3910/cantocalc/internal/catalog"
	"github.com/piwi3910/cantocalc/internal/config"
	"github.com/piwi3910/cantocalc/internal/logger"
	"github.com/piwi3910/cantocalc/internal/model"
)

// Server represents the API server.
type Server struct {
	cfg      *config.Config
	router   chi.Router
	catalog  catalog.Catalog
	defaults model.Options
	sessions *SessionRegistry
	logger   arbor.ILogger
}

// NewServer creates a new API server. The catalog is read-only for the
// lifetime of the server.
func NewServer(cfg *config.Config, cat catalog.Catalog) (*Server, error) {
	defaults, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		catalog:  cat,
		defaults: defaults,
		sessions: NewSessionRegistry(cfg.Server.MaxSessions, cfg.Server.SessionIdle()),
		logger:   logger.GetLogger(),
	}
	s.setupRouter()
	return s, nil
}

// setupRouter configures all routes.
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = config.DefaultConfig().Server.AllowedOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", SessionHeader},
		ExposedHeaders:   []string{SessionHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/diagram.dxf", s.handleDiagramDXF)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Post("/calculate", s.handleCalculate)
			r.Route("/history", func(r chi.Router) {
				r.Get("/", s.handleGetHistory)
				r.Delete("/", s.handleClearHistory)
				r.Get("/export.csv", s.handleExportCSV)
				r.Get("/export.xlsx", s.handleExportXLSX)
				r.Get("/export.pdf", s.handleExportPDF)
			})
		})
	})

	s.router = r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger logs each request through the service logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("status", strconv.Itoa(ww.Status())).
				Str("bytes", strconv.Itoa(ww.BytesWritten())).
				Str("duration", time.Since(start).String()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}
