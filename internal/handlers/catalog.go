package handlers

import (
	"net/http"

	"github.com/mbodji/metallerie-backend/internal/catalog"
	"github.com/mbodji/metallerie-backend/internal/httpx"
)

// CatalogHandler serves the static configurator dataset to the frontend.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler { return &CatalogHandler{} }

// List: GET /catalog/families
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "families": catalog.Families})
}

// Get: GET /catalog/families/{slug}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	fc := catalog.FamilyBySlug(r.PathValue("slug"))
	if fc == nil {
		httpx.JSONError(w, http.StatusNotFound, "unknown_family", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "family": fc})
}
