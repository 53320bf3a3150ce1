package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/pkg/backend"
	"github.com/go-playground/validator/v10"
)

const (
	MsgAllFieldsRequired = "All fields are required."
	MsgCartEmpty         = "Your cart is empty."
	MsgOrderPlaced       = "Order placed successfully!"
	MsgOrderFailed       = "Something went wrong. Please try again."
	MsgAlreadySubmitting = "Your order is already being placed."
)

type CheckoutService interface {
	State() models.CheckoutState
	Submit(ctx context.Context, details *models.ShippingDetails) (*models.CheckoutResponse, error)
}

type CheckoutOptions struct {
	ConfirmationDelay  time.Duration
	ClearCartOnSuccess bool
	Now                func() time.Time
}

type checkoutService struct {
	client    backend.Client
	state     *state.Store
	validator *validator.Validate
	opts      CheckoutOptions

	mu      sync.Mutex
	current models.CheckoutState
}

func NewCheckoutService(client backend.Client, st *state.Store, opts CheckoutOptions) CheckoutService {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &checkoutService{
		client:    client,
		state:     st,
		validator: validator.New(),
		opts:      opts,
		current:   models.CheckoutIdle,
	}
}

func (s *checkoutService) State() models.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

func (s *checkoutService) setState(next models.CheckoutState) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// begin runs the guards and moves to Submitting. Guard failures leave the
// state where it was.
func (s *checkoutService) begin(ctx context.Context, details *models.ShippingDetails) (*models.CreateOrderRequest, string, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == models.CheckoutSubmitting {
		return nil, "", errors.ConflictError(MsgAlreadySubmitting)
	}

	if err := s.validator.Struct(details); err != nil {
		return nil, "", errors.ValidationError(MsgAllFieldsRequired).WithDetail(utils.JoinMessages(err))
	}

	items := s.state.Cart()
	if len(items) == 0 {
		return nil, "", errors.ValidationError(MsgCartEmpty)
	}

	token, userID, err := activeToken(ctx, s.state, s.opts.Now(), MsgLoginRequired, true)
	if err != nil {
		return nil, "", err
	}

	s.current = models.CheckoutSubmitting

	return &models.CreateOrderRequest{
		UserID:          userID,
		Items:           items,
		TotalPrice:      ComputeTotal(items).StringFixed(2),
		ShippingDetails: *details,
	}, token, nil
}

func sanitizeShipping(d *models.ShippingDetails) {
	d.Name = utils.Sanitize(d.Name)
	d.Email = utils.Sanitize(d.Email)
	d.Address = utils.Sanitize(d.Address)
	d.Phone = utils.Sanitize(d.Phone)
	d.City = utils.Sanitize(d.City)
	d.ZipCode = utils.Sanitize(d.ZipCode)
}

// Submit places the order for the current cart. The cart is only cleared
// on success when configured to.
func (s *checkoutService) Submit(ctx context.Context, details *models.ShippingDetails) (*models.CheckoutResponse, error) {

	log := logger.FromContext(ctx)

	if details == nil {
		details = &models.ShippingDetails{}
	}
	sanitizeShipping(details)

	req, token, err := s.begin(ctx, details)
	if err != nil {
		metrics.CheckoutOutcome("rejected")
		return nil, err
	}

	order, err := s.client.CreateOrder(ctx, token, req)
	if err != nil {
		s.setState(models.CheckoutFailed)
		log.Error("Order placement failed", slog.String("error", err.Error()))
		recordAPIError(ctx, s.state, err)
		metrics.CheckoutOutcome("failed")
		// failure is shown once, then the form is usable again
		s.setState(models.CheckoutIdle)
		return nil, errors.BackendError(MsgOrderFailed).WithDetail(backendMessage(err, "")).WithError(err)
	}

	if perr := s.state.Mutate(ctx, func(tx *state.Tx) error {
		tx.SetLastOrder(order)
		if s.opts.ClearCartOnSuccess {
			tx.SetCart(nil)
		}
		return nil
	}); perr != nil {
		log.Error("Failed to persist order details", slog.String("orderId", order.ID), slog.String("error", perr.Error()))
	}

	s.setState(models.CheckoutSucceeded)
	metrics.CheckoutOutcome("succeeded")
	log.Info("Order placed", slog.String("orderId", order.ID), slog.String("total", req.TotalPrice))

	return &models.CheckoutResponse{
		State:         models.CheckoutSucceeded,
		Order:         order,
		Notice:        MsgOrderPlaced,
		Redirect:      "/order/" + order.ID,
		RedirectAfter: s.opts.ConfirmationDelay.String(),
	}, nil
}
