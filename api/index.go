package handler

import (
	"net/http"

	"github.com/nattawatp/ai-tools-navigator/pkg/adapters/handler"
	"github.com/nattawatp/ai-tools-navigator/pkg/adapters/repository/sqlite"
	"github.com/nattawatp/ai-tools-navigator/pkg/config"
	"github.com/nattawatp/ai-tools-navigator/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, db.sqlite is ephemeral unless using a remote SQL/Turso URL in DATABASE_URL
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	svcs := handler.Services{
		Identity:   services.NewIdentityService(repo, cfg.BootstrapAdminEmail),
		Catalog:    services.NewCatalogService(repo),
		Tools:      services.NewToolService(repo),
		Categories: services.NewCategoryService(repo, cfg.CategoryDeletePolicy),
		Favorites:  services.NewFavoriteService(repo),
		Analytics:  services.NewAnalyticsService(repo),
	}
	mux = handler.NewRouter(cfg, svcs)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
