package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/saju-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health                       liveness and backend info
//	POST /api/v1/saju                  full chart for a birth moment
//	GET  /api/v1/lunar/{date}          Gregorian date to lunar date
//	GET  /api/v1/solar/{date}?leap=    lunar date to Gregorian date
//	GET  /api/v1/solar-terms/{year}    the 24 terms of a year
//	*    /mcp                          streamable MCP endpoint (optional)
//
// Everything under /api/v1 and /mcp requires X-API-Key when API_KEY is set.
// mcpHandler may be nil to leave /mcp unmounted.
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger, mcpHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	// ==========================================================================
	// Public routes
	// ==========================================================================
	r.Get("/health", handlers.HealthCheck)

	// ==========================================================================
	// Calculation routes
	// ==========================================================================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg, logger))

		r.Post("/saju", handlers.CalculateSaju)
		r.Get("/lunar/{date}", handlers.SolarToLunar)
		r.Get("/solar/{date}", handlers.LunarToSolar)
		r.Get("/solar-terms/{year}", handlers.SolarTerms)
	})

	// ==========================================================================
	// MCP
	// ==========================================================================
	if mcpHandler != nil {
		r.With(AuthMiddleware(cfg, logger)).Handle("/mcp", mcpHandler)
	}

	return r
}
