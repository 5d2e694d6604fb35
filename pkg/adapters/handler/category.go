package handler

import (
	"encoding/json"
	"net/http"

	"github.com/nattawatp/ai-tools-navigator/pkg/ports"
)

type CategoryHandler struct {
	categorySvc ports.CategoryService
}

func NewCategoryHandler(categorySvc ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// CategoryRequest payload for create and update
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.categorySvc.CreateCategory(r.Context(), actorID(r), req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := map[string]interface{}{
		"data":  categories,
		"total": len(categories),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.categorySvc.UpdateCategory(r.Context(), actorID(r), r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Delete runs the category deletion lifecycle. When dependent tools
// exist the first call answers 409 with the count; the client retries
// with ?confirm=true to accept the reassignment.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"

	if err := h.categorySvc.DeleteCategory(r.Context(), actorID(r), r.PathValue("id"), confirmed); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
