package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nattawatp/ai-tools-navigator/pkg/core/domain"
	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type ToolHandler struct {
	toolSvc     ports.ToolService
	favoriteSvc ports.FavoriteService
}

func NewToolHandler(toolSvc ports.ToolService, favoriteSvc ports.FavoriteService) *ToolHandler {
	return &ToolHandler{toolSvc: toolSvc, favoriteSvc: favoriteSvc}
}

// ToolRequest payload for create and update
type ToolRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Icon        string  `json:"icon,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

func (req ToolRequest) draft() domain.Tool {
	return domain.Tool{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		Icon:        req.Icon,
		CategoryID:  req.CategoryID,
	}
}

// Create Tool
func (h *ToolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tool, err := h.toolSvc.CreateTool(r.Context(), actorID(r), req.draft())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tool)
}

// Get a single tool
func (h *ToolHandler) Get(w http.ResponseWriter, r *http.Request) {
	tool, err := h.toolSvc.GetTool(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

// List tools, optionally filtered by ?search=
func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	tools, err := h.toolSvc.ListTools(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"data":  tools,
		"total": len(tools),
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update Tool
func (h *ToolHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tool, err := h.toolSvc.UpdateTool(r.Context(), actorID(r), r.PathValue("id"), req.draft())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tool)
}

// Delete Tool
func (h *ToolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.toolSvc.DeleteTool(r.Context(), actorID(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Open resolves the tool's outbound URL and redirects. The click is
// recorded off the request path so a slow or failing write never
// delays the redirect.
func (h *ToolHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	url, _, err := h.toolSvc.Open(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	uid := actorID(r)
	referrer := r.Header.Get("Referer")
	userAgent := r.UserAgent()
	go func() {
		// Request context is cancelled once we redirect.
		if err := h.toolSvc.RecordClick(context.Background(), uid, id, referrer, userAgent); err != nil {
			log.Printf("record click for tool %s: %v", id, err)
		}
	}()

	http.Redirect(w, r, url, http.StatusFound)
}

// Track records a click reported by the client and answers with the
// optimistic count before the write is confirmed.
func (h *ToolHandler) Track(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, optimistic, err := h.toolSvc.Open(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	uid := actorID(r)
	referrer := r.Header.Get("Referer")
	userAgent := r.UserAgent()
	go func() {
		if err := h.toolSvc.RecordClick(context.Background(), uid, id, referrer, userAgent); err != nil {
			log.Printf("record click for tool %s: %v", id, err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"tool_id":      id,
		"clicks_count": optimistic,
	})
}

// Favorite bookmarks the tool for the acting user.
func (h *ToolHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	if err := h.favoriteSvc.AddFavorite(r.Context(), actorID(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unfavorite removes the bookmark; absent bookmarks are a no-op.
func (h *ToolHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.favoriteSvc.RemoveFavorite(r.Context(), actorID(r), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP statuses. Unknown errors
// stay opaque to the client.
func writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var conflict *domain.ReferentialConflictError
	var confirm *domain.ConfirmationRequiredError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "unauthorized"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]interface{}{"error": "forbidden"})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": verr.Error(),
			"field": verr.Field,
		})
	case errors.As(err, &confirm):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":                 confirm.Error(),
			"tool_count":            confirm.ToolCount,
			"confirmation_required": true,
		})
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":      conflict.Error(),
			"tool_count": conflict.ToolCount,
		})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal server error"})
	}
}
