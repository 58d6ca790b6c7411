package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filter := ports.ProductFilter{
		Category: r.URL.Query().Get("category"),
		Featured: r.URL.Query().Get("featured") == "true",
	}
	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, "Produit non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Produit non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	created, err := h.service.CreateProduct(r.Context(), product)
	if err != nil {
		writeDomainError(w, err, "Produit non trouvé")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch ports.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}
	updated, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, err, "Produit non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, "Produit non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) likeProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.LikeProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Produit non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) viewProduct(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ViewProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "Produit non trouvé")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"views": views})
}
