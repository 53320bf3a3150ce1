package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type WishlistHandler struct {
	wishlistService service.WishlistService
	catalogService  service.CatalogService
}

func NewWishlistHandler(wishlistService service.WishlistService, catalogService service.CatalogService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, catalogService: catalogService}
}

func (h *WishlistHandler) GetWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		entries, err := h.wishlistService.Load(r.Context())
		if err != nil {
			fail(w, r, "Failed to load wishlist", err)
			return
		}

		response.Success(w, http.StatusOK, models.WishlistView{Items: entries})
	}
}

// Toggle removes a wishlisted product without asking the backend; adding
// one fetches its current snapshot first.
func (h *WishlistHandler) Toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")

		var product *models.Product
		if entry, ok := h.wishlistService.Find(r.Context(), id); ok {
			product = &entry.Product
		} else {
			p, err := h.catalogService.GetProduct(r.Context(), id)
			if err != nil {
				fail(w, r, "Failed to load product for wishlist", err)
				return
			}
			product = p
		}

		inWishlist, err := h.wishlistService.Toggle(r.Context(), product)
		if err != nil {
			fail(w, r, "Failed to toggle wishlist", err)
			return
		}

		response.Success(w, http.StatusOK, models.ToggleWishlistResponse{ProductID: id, InWishlist: inWishlist})
	}
}

func (h *WishlistHandler) Remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		entries, err := h.wishlistService.Remove(r.Context(), r.PathValue("id"))
		if err != nil {
			fail(w, r, "Failed to remove wishlist entry", err)
			return
		}

		response.Success(w, http.StatusOK, models.WishlistView{Items: entries})
	}
}

func (h *WishlistHandler) MoveToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		result, err := h.wishlistService.MoveToCart(r.Context(), r.PathValue("id"))
		if err != nil {
			fail(w, r, "Failed to move wishlist entry to cart", err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}
