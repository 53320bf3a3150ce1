package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type OrderHandler struct {
	checkoutService service.CheckoutService
	orderService    service.OrderService
}

func NewOrderHandler(checkoutService service.CheckoutService, orderService service.OrderService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService, orderService: orderService}
}

// Checkout leaves field validation to the checkout service so that the
// form gets its single "all fields" message.
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ShippingDetails

		if !utils.ParseAndValidate(r, w, &req, nil) {
			return
		}

		resp, err := h.checkoutService.Submit(r.Context(), &req)
		if err != nil {
			fail(w, r, "Checkout failed", err)
			return
		}

		if resp.Redirect != "" {
			w.Header().Set("Location", resp.Redirect)
		}

		response.Success(w, http.StatusCreated, resp)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		order, err := h.orderService.Confirmation(r.Context(), r.PathValue("id"))
		if err != nil {
			fail(w, r, "Order confirmation unavailable", err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}
