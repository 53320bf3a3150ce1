package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/shopspring/decimal"
)

const (
	MsgSelectSize  = "Please select a size before adding to cart."
	MsgAddedToCart = "Product added to cart!"
)

type CartService interface {
	Load(ctx context.Context) ([]models.CartLineItem, error)
	Items(ctx context.Context) []models.CartLineItem
	Add(ctx context.Context, product *models.Product, size string) ([]models.CartLineItem, error)
	Remove(ctx context.Context, productID string) ([]models.CartLineItem, error)
	SetQuantity(ctx context.Context, productID string, quantity int) ([]models.CartLineItem, error)
	View(ctx context.Context) *models.CartView
}

type cartService struct {
	state *state.Store
}

func NewCartService(st *state.Store) CartService {
	return &cartService{state: st}
}

// Load re-reads the persisted cart. Malformed data yields an empty cart.
func (s *cartService) Load(ctx context.Context) ([]models.CartLineItem, error) {

	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}

	return s.state.Cart(), nil
}

func (s *cartService) Items(ctx context.Context) []models.CartLineItem {
	return s.state.Cart()
}

// Add merges the product into the line with the same (id, size), or
// appends a new line with quantity 1. Sizeless products always use "".
func (s *cartService) Add(ctx context.Context, product *models.Product, size string) ([]models.CartLineItem, error) {

	if product == nil || product.ID == "" {
		return nil, errors.ValidationError("Product is required")
	}

	if product.Sizeless() {
		size = ""
	} else {
		if size == "" {
			return nil, errors.ValidationError(MsgSelectSize)
		}
		if !models.ValidSize(size) {
			return nil, errors.AddValidationError("size", "must be one of S, M, L, XL, XXL")
		}
	}

	var items []models.CartLineItem

	err := s.state.Mutate(ctx, func(tx *state.Tx) error {
		items = addLine(tx.Cart(), *product, size)
		tx.SetCart(items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartMutation("add")
	logger.FromContext(ctx).Info("Product added to cart", slog.String("productId", product.ID), slog.String("size", size))

	return items, nil
}

func addLine(items []models.CartLineItem, product models.Product, size string) []models.CartLineItem {

	for i := range items {
		if items[i].Matches(product.ID, size) {
			items[i].Quantity++
			return items
		}
	}

	return append(items, models.CartLineItem{Product: product, Size: size, Quantity: 1})
}

// Remove drops every line with productID, whatever its size.
func (s *cartService) Remove(ctx context.Context, productID string) ([]models.CartLineItem, error) {

	var items []models.CartLineItem

	err := s.state.Mutate(ctx, func(tx *state.Tx) error {
		current := tx.Cart()
		items = make([]models.CartLineItem, 0, len(current))
		for _, item := range current {
			if item.ID != productID {
				items = append(items, item)
			}
		}
		if len(items) != len(current) {
			tx.SetCart(items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartMutation("remove")

	return items, nil
}

// SetQuantity ignores quantities below 1. Otherwise every line with
// productID takes the new quantity.
func (s *cartService) SetQuantity(ctx context.Context, productID string, quantity int) ([]models.CartLineItem, error) {

	if quantity <= 0 {
		logger.FromContext(ctx).Debug("Ignoring non-positive quantity", slog.String("productId", productID), slog.Int("quantity", quantity))
		return s.state.Cart(), nil
	}

	var items []models.CartLineItem

	err := s.state.Mutate(ctx, func(tx *state.Tx) error {
		items = tx.Cart()
		changed := false
		for i := range items {
			if items[i].ID == productID && int(items[i].Quantity) != quantity {
				items[i].Quantity = models.Quantity(quantity)
				changed = true
			}
		}
		if changed {
			tx.SetCart(items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartMutation("set_quantity")

	return items, nil
}

func (s *cartService) View(ctx context.Context) *models.CartView {

	items := s.state.Cart()

	count := 0
	for _, item := range items {
		count += int(item.Quantity)
	}

	return &models.CartView{
		Items:     items,
		ItemCount: count,
		Total:     ComputeTotal(items).StringFixed(2),
	}
}

// ComputeTotal sums price x quantity exactly and rounds to 2 places.
// Non-numeric values were already decoded as 0.
func ComputeTotal(items []models.CartLineItem) decimal.Decimal {

	total := decimal.Zero

	for _, item := range items {
		price := decimal.NewFromFloat(item.Price.Float64())
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total.Round(2)
}
