package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (h *Handler) listPlugs(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("all") == "true"
	plugs, err := h.service.ListPlugs(r.Context(), includeInactive)
	if err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusOK, plugs)
}

func (h *Handler) getPlug(w http.ResponseWriter, r *http.Request) {
	plug, err := h.service.GetPlug(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusOK, plug)
}

func (h *Handler) createPlug(w http.ResponseWriter, r *http.Request) {
	var plug domain.Plug
	if err := json.NewDecoder(r.Body).Decode(&plug); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	created, err := h.service.CreatePlug(r.Context(), plug)
	if err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updatePlug(w http.ResponseWriter, r *http.Request) {
	var patch ports.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	updated, err := h.service.UpdatePlug(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deletePlug(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlug(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) likePlug(w http.ResponseWriter, r *http.Request) {
	plug, err := h.service.LikePlug(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusOK, plug)
}

func (h *Handler) trackPlugReferral(w http.ResponseWriter, r *http.Request) {
	plug, err := h.service.TrackPlugReferral(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusOK, plug)
}

func (h *Handler) addLikesToAllPlugs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Likes int64 `json:"likes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	updated, err := h.service.AddLikesToAllPlugs(r.Context(), req.Likes)
	if err != nil {
		writeDomainError(w, err, "Plug not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "updated": updated})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeDomainError(w, err, "Statistiques indisponibles")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
