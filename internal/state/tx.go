package state

import (
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/storage"
)

// Tx is the working copy handed to a Mutate callback.
type Tx struct {
	next  Snapshot
	dirty []string
}

func (t *Tx) touch(name string) {
	for _, d := range t.dirty {
		if d == name {
			return
		}
	}
	t.dirty = append(t.dirty, name)
}

func (t *Tx) Cart() []models.CartLineItem {
	return t.next.Cart
}

func (t *Tx) SetCart(items []models.CartLineItem) {
	if items == nil {
		items = []models.CartLineItem{}
	}
	t.next.Cart = items
	t.touch(storage.CartKey)
}

func (t *Tx) Wishlist() []models.WishlistEntry {
	return t.next.Wishlist
}

func (t *Tx) SetWishlist(entries []models.WishlistEntry) {
	if entries == nil {
		entries = []models.WishlistEntry{}
	}
	t.next.Wishlist = entries
	t.touch(storage.WishlistKey)
}

func (t *Tx) Token() string {
	return t.next.Token
}

// SetToken stores the session token; an empty token removes it.
func (t *Tx) SetToken(token string) {
	t.next.Token = token
	t.touch(storage.TokenKey)
}

func (t *Tx) LastOrder() *models.Order {
	return t.next.LastOrder
}

func (t *Tx) SetLastOrder(order *models.Order) {
	t.next.LastOrder = order
	t.touch(storage.OrderDetailsKey)
}

// SetAPIError records the last backend failure message; empty clears it.
func (t *Tx) SetAPIError(message string) {
	t.next.APIError = message
	t.touch(storage.APIErrorKey)
}

func (t *Tx) ops(key func(string) string) []storage.Op {

	ops := make([]storage.Op, 0, len(t.dirty))

	for _, name := range t.dirty {
		op := storage.Op{Key: key(name)}

		switch name {
		case storage.CartKey:
			op.Value = t.next.Cart
		case storage.WishlistKey:
			op.Value = t.next.Wishlist
		case storage.TokenKey:
			if t.next.Token != "" {
				op.Value = t.next.Token
			}
		case storage.OrderDetailsKey:
			if t.next.LastOrder != nil {
				op.Value = t.next.LastOrder
			}
		case storage.APIErrorKey:
			if t.next.APIError != "" {
				op.Value = t.next.APIError
			}
		}

		ops = append(ops, op)
	}

	return ops
}
