package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

// telegramIDField reads a Telegram ID out of a decoded JSON body. The
// companion bot serializes IDs as numbers, the Mini-App as strings; both
// forms map to the same string key.
func telegramIDField(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	}
	return ""
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err, "Utilisateur non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) getUserMe(w http.ResponseWriter, r *http.Request) {
	telegramID := r.URL.Query().Get("telegramId")
	user, err := h.service.GetUserByTelegramID(r.Context(), telegramID)
	if err != nil {
		writeDomainError(w, err, "Utilisateur non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) getUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetUserStats(r.Context(), r.URL.Query().Get("telegramId"))
	if err != nil {
		writeDomainError(w, err, "Utilisateur non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) countUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int64{"count": h.service.CountUsers(r.Context())})
}

func (h *Handler) syncUser(w http.ResponseWriter, r *http.Request) {
	var patch ports.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	telegramID := telegramIDField(patch["telegramId"])
	if telegramID != "" {
		patch["telegramId"] = telegramID
	}
	user, err := h.service.SyncUser(r.Context(), telegramID, patch)
	if err != nil {
		writeDomainError(w, err, "Utilisateur non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) removeSyncedUser(w http.ResponseWriter, r *http.Request) {
	var body ports.Patch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	// The bot retries deletes; an already-gone user is still a success.
	err := h.service.RemoveSyncedUser(r.Context(), telegramIDField(body["telegramId"]))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeDomainError(w, err, "Utilisateur non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) sendPoints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TelegramID string `json:"telegramId"`
		Points     int64  `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	stats, err := h.service.SendPoints(r.Context(), req.TelegramID, req.Points)
	if err != nil {
		writeDomainError(w, err, "Utilisateur non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
