package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cognipath/internal/auth"
	"cognipath/internal/handlers"
	"cognipath/internal/path"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	PathService path.Service
	DB          *sql.DB
	AuthSecret  []byte
}

// NewRouter creates a new HTTP router with the provided dependencies.
// Everything under /api/paths requires a valid bearer token; health
// stays open for probes.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	// Add CORS middleware
	r.Use(CORS)

	generateHandler := handlers.NewGenerateHandler(deps.PathService)
	uploadHandler := handlers.NewUploadHandler(deps.PathService)
	pathHandler := handlers.NewPathHandler(deps.PathService)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/paths", func(r chi.Router) {
			r.Use(auth.Middleware(deps.AuthSecret))

			r.Get("/", pathHandler.List)
			r.Method(http.MethodPost, "/text", generateHandler)
			r.Method(http.MethodPost, "/pdf", uploadHandler)
			r.Get("/{id}", pathHandler.Get)
			r.Post("/{id}/advance", pathHandler.Advance)
			r.Get("/{id}/source", pathHandler.Source)
		})
	})

	return r
}
