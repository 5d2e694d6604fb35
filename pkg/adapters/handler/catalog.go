package handler

import (
	"net/http"

	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type CatalogHandler struct {
	catalogSvc ports.CatalogService
}

func NewCatalogHandler(catalogSvc ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// Browse answers the catalog view for the selected bucket and search
// query. Anonymous viewers get the public buckets; signed-in viewers
// also get their favorites.
func (h *CatalogHandler) Browse(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	query := r.URL.Query().Get("q")

	view, err := h.catalogSvc.Browse(r.Context(), actorID(r), bucket, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
