package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService    service.CartService
	catalogService service.CatalogService
	validator      *validator.Validate
}

// CartUpdate is returned by every cart mutation.
type CartUpdate struct {
	Notice string           `json:"notice,omitempty"`
	Cart   *models.CartView `json:"cart"`
}

func NewCartHandler(cartService service.CartService, catalogService service.CatalogService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, err := h.cartService.Load(r.Context()); err != nil {
			fail(w, r, "Failed to load cart", err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.View(r.Context()))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), req.ProductID)
		if err != nil {
			fail(w, r, "Failed to load product for cart", err)
			return
		}

		if _, err := h.cartService.Add(r.Context(), product, req.Size); err != nil {
			fail(w, r, "Failed to add item to cart", err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Item added to cart", slog.String("productId", product.ID), slog.String("size", req.Size))
		response.Success(w, http.StatusOK, CartUpdate{Notice: service.MsgAddedToCart, Cart: h.cartService.View(r.Context())})
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateQuantityRequest

		if !utils.ParseAndValidate(r, w, &req, nil) {
			return
		}

		if _, err := h.cartService.SetQuantity(r.Context(), r.PathValue("id"), req.Quantity); err != nil {
			fail(w, r, "Failed to update quantity", err)
			return
		}

		response.Success(w, http.StatusOK, CartUpdate{Cart: h.cartService.View(r.Context())})
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if _, err := h.cartService.Remove(r.Context(), r.PathValue("id")); err != nil {
			fail(w, r, "Failed to remove item", err)
			return
		}

		response.Success(w, http.StatusOK, CartUpdate{Cart: h.cartService.View(r.Context())})
	}
}
