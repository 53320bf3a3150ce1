package storage

import (
	"context"
)

// Store is the persistent key-value adapter. Values are JSON encoded.
type Store interface {
	// Get decodes the value under key into value. found is false when the key is absent.
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	// Commit applies all ops atomically.
	Commit(ctx context.Context, ops ...Op) error
	Close() error
}

// Op writes Value under Key; a nil Value deletes the key.
type Op struct {
	Key   string
	Value any
}

func Key(namespace string, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + ":" + name
}

const (
	TokenKey        = "token"
	CartKey         = "cart"
	WishlistKey     = "wishlist"
	OrderDetailsKey = "orderDetails"
	APIErrorKey     = "apiError"
)
