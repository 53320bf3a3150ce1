package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// ListProducts serves the home listing, or a segment browse view when
// ?segment= is given. category, brand and price may repeat.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		query := r.URL.Query()

		if query.Get("segment") == "" {
			products, err := h.catalogService.ListProducts(r.Context())
			if err != nil {
				fail(w, r, "Failed to list products", err)
				return
			}

			response.Success(w, http.StatusOK, products)
			return
		}

		segment, ok := catalog.ParseSegment(query.Get("segment"))
		if !ok {
			fail(w, r, "Unknown segment", appErrors.AddValidationError("segment", "must be one of Mens, Womens, Kids, Home"))
			return
		}

		filter := catalog.NewFilter(query["category"], query["brand"], query["price"])

		result, err := h.catalogService.Browse(r.Context(), segment, filter)
		if err != nil {
			fail(w, r, "Failed to browse products", err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		detail, err := h.catalogService.Detail(r.Context(), r.PathValue("id"))
		if err != nil {
			fail(w, r, "Failed to load product", err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}

func (h *ProductHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.catalogService.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			fail(w, r, "Search failed", err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Debug("Search served")
		response.Success(w, http.StatusOK, products)
	}
}
