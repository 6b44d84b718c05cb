// Package api provides the HTTP API server and handlers for the Foodgram backend.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/foodgramapp/foodgram-server/internal/auth"
	"github.com/foodgramapp/foodgram-server/internal/dto"
	"github.com/foodgramapp/foodgram-server/internal/http/response"
	"github.com/foodgramapp/foodgram-server/internal/ratelimit"
	"github.com/foodgramapp/foodgram-server/internal/store"
)

// Options tunes the HTTP surface.
type Options struct {
	// CORSAllowedOrigins lists origins allowed to call the API from a browser.
	CORSAllowedOrigins []string
	// WriteRateLimit is the sustained rate of mutating requests per client, per second.
	WriteRateLimit float64
	// WriteBurst is the number of mutating requests a client may make at once.
	WriteBurst int
	// Version is reported in the OpenAPI document.
	Version string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.Store
	services     *Services
	presenter    *dto.Presenter
	tokens       *auth.TokenService
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	writeLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, tokens *auth.TokenService, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}
	if opts.WriteBurst <= 0 {
		opts.WriteBurst = 1
	}

	s := &Server{
		store:        st,
		services:     services,
		presenter:    dto.NewPresenter(st),
		tokens:       tokens,
		router:       chi.NewRouter(),
		logger:       logger,
		writeLimiter: ratelimit.New(opts.WriteRateLimit, opts.WriteBurst),
	}

	s.setupMiddleware(opts)
	s.api = humachi.New(s.router, newHumaConfig(opts.Version))
	RegisterErrorHandler()
	s.setupRoutes()

	return s
}

// newHumaConfig returns the huma configuration shared by the server and tests.
func newHumaConfig(version string) huma.Config {
	cfg := huma.DefaultConfig("Foodgram API", version)
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	// Plain response bodies: no $schema links.
	cfg.CreateHooks = nil
	return cfg
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources owned by the server.
func (s *Server) Close() {
	s.writeLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	if len(opts.CORSAllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	s.router.Use(viewerMiddleware(s.tokens, s.store))
	s.router.Use(writeRateLimitMiddleware(s.writeLimiter, s.logger))

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w, s.logger)
	})
}

// setupRoutes registers every huma operation.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerCatalogRoutes()
	s.registerUserRoutes()
	s.registerRecipeRoutes()
}
