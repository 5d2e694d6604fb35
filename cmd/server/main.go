package main

import (
	"log"
	"net/http"
	"time"

	"github.com/nattawatp/ai-tools-navigator/pkg/adapters/handler"
	"github.com/nattawatp/ai-tools-navigator/pkg/adapters/repository/sqlite"
	"github.com/nattawatp/ai-tools-navigator/pkg/config"
	"github.com/nattawatp/ai-tools-navigator/pkg/core/services"
)

func main() {
	cfg := config.Load()

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize Services
	svcs := handler.Services{
		Identity:   services.NewIdentityService(repo, cfg.BootstrapAdminEmail),
		Catalog:    services.NewCatalogService(repo),
		Tools:      services.NewToolService(repo),
		Categories: services.NewCategoryService(repo, cfg.CategoryDeletePolicy),
		Favorites:  services.NewFavoriteService(repo),
		Analytics:  services.NewAnalyticsService(repo),
	}

	// Initialize Router
	mux := handler.NewRouter(cfg, svcs)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
