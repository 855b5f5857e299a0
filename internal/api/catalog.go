package api

import (
	"errors"
	"net/http"

	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
)

// CatalogHandler serves category reference data.
type CatalogHandler struct {
	Catalog *service.Catalog
}

// Subcategories handles GET /get_subcategories?mainCategory=.
func (h *CatalogHandler) Subcategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Catalog.Subcategories(r.Context(), r.URL.Query().Get("mainCategory"))
	if errors.Is(err, model.ErrInvalidInput) {
		jsonError(w, http.StatusBadRequest, "Main category is required.")
		return
	}
	if err != nil {
		writeError(w, "list subcategories", err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string][]string{"subcategories": subs})
}

// MainCategories handles GET /api/categories.
func (h *CatalogHandler) MainCategories(w http.ResponseWriter, r *http.Request) {
	mains, err := h.Catalog.MainCategories(r.Context())
	if err != nil {
		writeError(w, "list categories", err)
		return
	}
	if mains == nil {
		mains = []string{}
	}
	jsonResponse(w, http.StatusOK, map[string][]string{"main_categories": mains})
}
