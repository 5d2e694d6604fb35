package handler

import (
	"net/http"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type AnalyticsHandler struct {
	analyticsSvc ports.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// Dashboard answers the admin analytics rollups. Supports
// ?category=<name> to scope the tool table and ?sort=total|recent|users.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	categoryFilter := r.URL.Query().Get("category")
	sortBy := domain.SortKey(r.URL.Query().Get("sort"))

	stats, err := h.analyticsSvc.Dashboard(r.Context(), actorID(r), categoryFilter, sortBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
