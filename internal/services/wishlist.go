package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/logger"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/state"
)

type WishlistService interface {
	Load(ctx context.Context) ([]models.WishlistEntry, error)
	Items(ctx context.Context) []models.WishlistEntry
	Contains(ctx context.Context, productID string) bool
	Find(ctx context.Context, productID string) (*models.WishlistEntry, bool)
	Toggle(ctx context.Context, product *models.Product) (bool, error)
	Remove(ctx context.Context, productID string) ([]models.WishlistEntry, error)
	MoveToCart(ctx context.Context, productID string) (*MoveResult, error)
}

type MoveResult struct {
	Cart     []models.CartLineItem  `json:"cart"`
	Wishlist []models.WishlistEntry `json:"wishlist"`
}

type wishlistService struct {
	state *state.Store
}

func NewWishlistService(st *state.Store) WishlistService {
	return &wishlistService{state: st}
}

// Load re-reads the persisted wishlist; unusable entries are dropped and
// the cleaned list is written back.
func (s *wishlistService) Load(ctx context.Context) ([]models.WishlistEntry, error) {

	if err := s.state.Reload(ctx); err != nil {
		return nil, err
	}

	return s.state.Wishlist(), nil
}

func (s *wishlistService) Items(ctx context.Context) []models.WishlistEntry {
	return s.state.Wishlist()
}

func (s *wishlistService) Contains(ctx context.Context, productID string) bool {
	_, ok := s.Find(ctx, productID)
	return ok
}

func (s *wishlistService) Find(ctx context.Context, productID string) (*models.WishlistEntry, bool) {

	for _, entry := range s.state.Wishlist() {
		if entry.ID == productID {
			return &entry, true
		}
	}

	return nil, false
}

// Toggle removes the product if present, else appends it. It returns the
// new membership.
func (s *wishlistService) Toggle(ctx context.Context, product *models.Product) (bool, error) {

	if product == nil || product.ID == "" {
		return false, errors.ValidationError("Product is required")
	}

	var inWishlist bool

	err := s.state.Mutate(ctx, func(tx *state.Tx) error {
		current := tx.Wishlist()
		next := make([]models.WishlistEntry, 0, len(current)+1)
		for _, entry := range current {
			if entry.ID != product.ID {
				next = append(next, entry)
			}
		}

		inWishlist = len(next) == len(current)
		if inWishlist {
			next = append(next, models.WishlistEntry{Product: *product})
		}

		tx.SetWishlist(next)
		return nil
	})
	if err != nil {
		return false, err
	}

	metrics.CartMutation("wishlist_toggle")
	logger.FromContext(ctx).Info("Wishlist toggled", slog.String("productId", product.ID), slog.Bool("inWishlist", inWishlist))

	return inWishlist, nil
}

func (s *wishlistService) Remove(ctx context.Context, productID string) ([]models.WishlistEntry, error) {

	var entries []models.WishlistEntry

	err := s.state.Mutate(ctx, func(tx *state.Tx) error {
		entries = removeEntry(tx.Wishlist(), productID)
		if len(entries) != len(tx.Wishlist()) {
			tx.SetWishlist(entries)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartMutation("wishlist_remove")

	return entries, nil
}

// MoveToCart takes the entry out of the wishlist and into the cart in a
// single commit. Wishlist entries carry no size, so the first cart line
// with the same product id is incremented whatever its size.
func (s *wishlistService) MoveToCart(ctx context.Context, productID string) (*MoveResult, error) {

	result := &MoveResult{}

	err := s.state.Mutate(ctx, func(tx *state.Tx) error {

		var entry *models.WishlistEntry
		for _, e := range tx.Wishlist() {
			if e.ID == productID {
				entry = &e
				break
			}
		}
		if entry == nil {
			return errors.NotFoundError("Product is not in the wishlist")
		}

		cart := tx.Cart()
		merged := false
		for i := range cart {
			if cart[i].ID == productID {
				cart[i].Quantity++
				merged = true
				break
			}
		}
		if !merged {
			cart = append(cart, models.CartLineItem{Product: entry.Product, Quantity: 1})
		}

		result.Cart = cart
		result.Wishlist = removeEntry(tx.Wishlist(), productID)

		tx.SetCart(result.Cart)
		tx.SetWishlist(result.Wishlist)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartMutation("move_to_cart")
	logger.FromContext(ctx).Info("Moved wishlist entry to cart", slog.String("productId", productID))

	return result, nil
}

func removeEntry(entries []models.WishlistEntry, productID string) []models.WishlistEntry {

	out := make([]models.WishlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != productID {
			out = append(out, e)
		}
	}

	return out
}
