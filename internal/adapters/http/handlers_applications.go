package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	status := domain.ApplicationStatus(r.URL.Query().Get("status"))
	apps, err := h.service.ListApplications(r.Context(), status)
	if err != nil {
		writeDomainError(w, err, "Candidature non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

func (h *Handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	var app domain.VendorApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	created, err := h.service.SubmitApplication(r.Context(), app)
	if err != nil {
		writeDomainError(w, err, "Candidature non trouvée")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateApplication(w http.ResponseWriter, r *http.Request) {
	var patch ports.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	updated, err := h.service.UpdateApplication(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, err, "Candidature non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteApplication(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "Candidature non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) approveApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReviewedBy string `json:"reviewedBy"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	plug, err := h.service.ApproveApplication(r.Context(), chi.URLParam(r, "id"), req.ReviewedBy)
	if err != nil {
		writeDomainError(w, err, "Candidature non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, plug)
}

func (h *Handler) rejectApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReviewedBy string `json:"reviewedBy"`
		Reason     string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	app, err := h.service.RejectApplication(r.Context(), chi.URLParam(r, "id"), req.ReviewedBy, req.Reason)
	if err != nil {
		writeDomainError(w, err, "Candidature non trouvée")
		return
	}
	writeJSON(w, http.StatusOK, app)
}
