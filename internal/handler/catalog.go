package handler

import (
	"net/http"
	"strconv"

	"github.com/eliteshop/eliteshop/internal/domain"
	"github.com/eliteshop/eliteshop/internal/service"
)

// CatalogHandler serves the read-only product catalog.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /api/products with an optional category query
// parameter.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64)

	products, err := h.catalog.ListProducts(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{productID}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PathValue("productID"), 10, 64)
	if err != nil || productID <= 0 {
		writeError(w, r, domain.Invalid("catalog.get_product", "Invalid product ID"))
		return
	}

	product, getErr := h.catalog.GetProduct(r.Context(), productID)
	if getErr != nil {
		writeError(w, r, getErr)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}
