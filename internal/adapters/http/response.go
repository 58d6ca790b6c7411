package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/plugscrtf/marketplace-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a domain error to the flat {"error": msg} shape the
// mini app expects. notFoundMsg overrides the generic not-found text so each
// resource keeps its own wording.
func writeDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, userMessage(err, domain.ErrInvalidInput))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrVersionMismatch):
		writeError(w, http.StatusConflict, userMessage(err, domain.ErrVersionMismatch))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, userMessage(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Service temporairement indisponible")
	default:
		writeError(w, http.StatusInternalServerError, "Erreur serveur")
	}
}

// userMessage strips the sentinel prefix so clients see only the
// human-readable part.
func userMessage(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
		return trimmed
	}
	return msg
}
