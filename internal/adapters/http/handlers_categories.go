package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, err, "Catégorie non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	created, err := h.service.CreateCategory(r.Context(), category)
	if err != nil {
		writeDomainError(w, err, "Catégorie non trouvée")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var patch ports.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	updated, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, err, "Catégorie non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "Catégorie non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
