package handlers

import (
	"net/http"

	"github.com/rs/cors"
)

// RouterConfig bundles the handlers and middleware the router wires up
type RouterConfig struct {
	Permissions *PermissionHandler
	Alerts      *AlertHandler
	Health      *HealthHandler
	Middleware  []func(http.Handler) http.Handler
}

// NewRouter builds the HTTP mux for the service.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/permissions", cfg.Permissions.List)
	mux.HandleFunc("POST /v1/permissions/check", cfg.Permissions.Check)
	mux.HandleFunc("PUT /v1/permissions", cfg.Permissions.Update)
	mux.HandleFunc("GET /v1/alerts", cfg.Alerts.List)
	mux.HandleFunc("GET /healthz", cfg.Health.Check)

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		handler = cfg.Middleware[i](handler)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", callerRoleHeader},
	})
	return c.Handler(handler)
}
