package http

import (
	"io"
	"net/http"
)

const maxMultipartMemory = 32 << 20

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Aucun fichier fourni")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Lecture du fichier impossible")
		return
	}
	url, err := h.service.UploadFile(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeDomainError(w, err, "Fichier non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
