// Package rest wires the HTTP surface: routing, middleware ordering and
// the health endpoints.
package rest

import (
	"net/http"

	"snipvault/infrastructure/di"
	"snipvault/interfaces/http/rest/handlers"
	"snipvault/interfaces/http/rest/middleware"
	"snipvault/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{container: container}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	c := rt.container
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(c.Logger))
	if c.Config.EnableMetrics {
		router.Use(middleware.Metrics(c.Metrics))
	}

	if c.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.snipvault.dev"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if c.Config.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(c.Metrics.Registry(), promhttp.HandlerOpts{}))
	}

	fileHandler := handlers.NewFileHandler(
		c.CreateFile,
		c.UpdateContent,
		c.UpdateSettings,
		c.DeleteFile,
		c.GetFile,
		c.ListFiles,
		c.Metrics,
		c.Logger,
	)
	unloadHandler := handlers.NewUnloadHandler(c.UpdateContent, c.Metrics, c.Logger)

	authenticate := middleware.Authenticate(c.JWTValidator, c.Logger)
	optionalAuth := middleware.OptionalAuthenticate(c.JWTValidator, c.Logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Every API request counts against the global window on top of
		// its per-action limit.
		r.Use(middleware.RateLimit(c.RateLimiter, auth.ActionGlobal, c.Metrics))

		// Public reads: visibility is enforced downstream
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/files/{fileID}", fileHandler.GetFile)
			r.Get("/files/{fileID}/content", fileHandler.GetContent)
		})

		// Authenticated writes and listings
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/files", fileHandler.ListFiles)
			r.With(middleware.RateLimit(c.RateLimiter, auth.ActionCreateFile, c.Metrics)).
				Post("/files", fileHandler.CreateFile)
			r.With(middleware.RateLimit(c.RateLimiter, auth.ActionUpdateFile, c.Metrics)).
				Put("/files/{fileID}/content", fileHandler.UpdateContent)
			r.Patch("/files/{fileID}", fileHandler.UpdateSettings)
			r.With(middleware.RateLimit(c.RateLimiter, auth.ActionDeleteFile, c.Metrics)).
				Delete("/files/{fileID}", fileHandler.DeleteFile)

			r.With(middleware.RateLimit(c.RateLimiter, auth.ActionSaveOnUnload, c.Metrics)).
				Post("/save-on-unload", unloadHandler.SaveOnUnload)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
