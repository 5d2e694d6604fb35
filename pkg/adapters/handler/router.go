package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nattawatp/ai-tools-navigator/pkg/config"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Identity   ports.IdentityService
	Catalog    ports.CatalogService
	Tools      ports.ToolService
	Categories ports.CategoryService
	Favorites  ports.FavoriteService
	Analytics  ports.AnalyticsService
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, svcs Services) http.Handler {
	// Initialize Handlers
	th := NewToolHandler(svcs.Tools, svcs.Favorites)
	ch := NewCategoryHandler(svcs.Categories)
	cath := NewCatalogHandler(svcs.Catalog)
	ah := NewAnalyticsHandler(svcs.Analytics)
	authHandler := NewAuthHandler(cfg, svcs.Identity)

	// Initialize Middleware
	mw := NewMiddleware(cfg)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)

	// Open to anonymous viewers; the actor is attached when a valid
	// cookie is present so clicks and favorites attribute correctly.
	mux.Handle("GET /open/{id}", mw.OptionalAuth(http.HandlerFunc(th.Open)))
	mux.Handle("GET /api/v1/catalog", mw.OptionalAuth(http.HandlerFunc(cath.Browse)))
	mux.Handle("POST /api/v1/tools/{id}/clicks", mw.OptionalAuth(http.HandlerFunc(th.Track)))

	// Protected Routes (API & Dashboard)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/v1/me", authHandler.Me)

	protectedMux.HandleFunc("POST /api/v1/tools", th.Create)
	protectedMux.HandleFunc("GET /api/v1/tools", th.List)
	protectedMux.HandleFunc("GET /api/v1/tools/{id}", th.Get)
	protectedMux.HandleFunc("PUT /api/v1/tools/{id}", th.Update)
	protectedMux.HandleFunc("DELETE /api/v1/tools/{id}", th.Delete)

	protectedMux.HandleFunc("PUT /api/v1/tools/{id}/favorite", th.Favorite)
	protectedMux.HandleFunc("DELETE /api/v1/tools/{id}/favorite", th.Unfavorite)

	protectedMux.HandleFunc("POST /api/v1/categories", ch.Create)
	protectedMux.HandleFunc("GET /api/v1/categories", ch.List)
	protectedMux.HandleFunc("PUT /api/v1/categories/{id}", ch.Update)
	protectedMux.HandleFunc("DELETE /api/v1/categories/{id}", ch.Delete)

	protectedMux.HandleFunc("GET /api/v1/dashboard", ah.Dashboard)

	// Apply Middleware to Protected Routes
	// Note: We match /api/v1/ to capture all API requests. The more
	// specific public patterns above win over this subtree match.
	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return mux
}
