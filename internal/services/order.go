package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/state"
)

type OrderService interface {
	Confirmation(ctx context.Context, orderID string) (*models.Order, error)
}

type orderService struct {
	state *state.Store
}

func NewOrderService(st *state.Store) OrderService {
	return &orderService{state: st}
}

// Confirmation returns the last placed order when it is the one asked for.
func (s *orderService) Confirmation(ctx context.Context, orderID string) (*models.Order, error) {

	order := s.state.LastOrder()
	if order == nil || orderID == "" || order.ID != orderID {
		return nil, errors.NotFoundError("Order not found").WithRedirect(errors.HomePath)
	}

	return order, nil
}
