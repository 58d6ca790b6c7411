package http

import (
	"encoding/json"
	"net/http"

	"github.com/plugscrtf/marketplace-service/internal/application"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		writeDomainError(w, err, "Paramètres non trouvés")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch ports.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	expectedVersion, _ := patch["version"].(float64)
	settings, err := h.service.UpdateSettings(r.Context(), patch, int64(expectedVersion))
	if err != nil {
		writeDomainError(w, err, "Paramètres non trouvés")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) getBackground(w http.ResponseWriter, r *http.Request) {
	bg, err := h.service.GetBackground(r.Context())
	if err != nil {
		writeDomainError(w, err, "Paramètres non trouvés")
		return
	}
	writeJSON(w, http.StatusOK, bg)
}

func (h *Handler) updateBackground(w http.ResponseWriter, r *http.Request) {
	var bg application.Background
	if err := json.NewDecoder(r.Body).Decode(&bg); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	updated, err := h.service.UpdateBackground(r.Context(), bg)
	if err != nil {
		writeDomainError(w, err, "Paramètres non trouvés")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) getSocial(w http.ResponseWriter, r *http.Request) {
	social, err := h.service.GetSocial(r.Context())
	if err != nil {
		writeDomainError(w, err, "Paramètres non trouvés")
		return
	}
	writeJSON(w, http.StatusOK, social)
}
