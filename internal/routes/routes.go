package routes

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"GO2GETHER_CREATOR-HUB/internal/handlers"
	"GO2GETHER_CREATOR-HUB/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	GoogleAuth *handlers.GoogleAuthHandler // nil when Google OAuth is not configured
	Creators   *handlers.CreatorHandler
	Templates  *handlers.TemplateHandler
	Discovery  *handlers.DiscoveryHandler
	Affiliates *handlers.AffiliateHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, resolver middleware.IdentityResolver, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.Auth(resolver)
	protect := func(fn http.HandlerFunc) http.Handler { return authed(fn) }

	// Health check routes
	mux.HandleFunc("GET /healthz", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.Handle("GET /api/auth/me", protect(h.Auth.Me))
	if h.GoogleAuth != nil {
		mux.HandleFunc("GET /api/auth/google/login", h.GoogleAuth.GoogleLogin)
		mux.HandleFunc("GET /api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	}

	// Creator profile
	mux.Handle("GET /api/creators/me", protect(h.Creators.GetMe))
	mux.Handle("POST /api/creators/me", protect(h.Creators.CreateMe))
	mux.Handle("PUT /api/creators/me", protect(h.Creators.UpdateMe))

	// Template authoring
	mux.Handle("GET /api/creators/me/templates", protect(h.Templates.ListMine))
	mux.Handle("POST /api/creators/me/templates", protect(h.Templates.Create))
	mux.Handle("GET /api/creators/me/templates/{id}", protect(h.Templates.Get))
	mux.Handle("PUT /api/creators/me/templates/{id}", protect(h.Templates.Update))
	mux.Handle("POST /api/creators/me/templates/{id}/publish", protect(h.Templates.Publish))

	// Affiliate links
	mux.Handle("POST /api/creators/me/templates/{id}/affiliate-links", protect(h.Affiliates.Create))
	mux.Handle("GET /api/creators/me/affiliate-links", protect(h.Affiliates.ListMine))

	// Public discovery
	mux.HandleFunc("GET /api/templates", h.Discovery.Discover)
	mux.HandleFunc("GET /api/templates/{id}", h.Discovery.GetTemplate)
	mux.HandleFunc("GET /api/templates/by-affiliate/{code}", h.Discovery.GetByAffiliate)

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("GET /{$}", rootHandler)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Go2gether creator hub is running."))
}
