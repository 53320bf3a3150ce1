package boltstore_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/aaravmahajanofficial/storefront/internal/storage/boltstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestData struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

func setup(t *testing.T) (storage.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storefront.db")
	store, err := boltstore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, path
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Round trip", func(t *testing.T) {
		// Arrange
		store, _ := setup(t)
		value := TestData{Field1: "value1", Field2: 123}

		// Act
		require.NoError(t, store.Set(ctx, "test:get", value))

		var result TestData
		found, err := store.Get(ctx, "test:get", &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, result)
	})

	t.Run("Success - Key Not Found", func(t *testing.T) {
		store, _ := setup(t)

		var result TestData
		found, err := store.Get(ctx, "missing", &result)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
	})

	t.Run("Failure - Unmarshal Error", func(t *testing.T) {
		// Arrange
		store, _ := setup(t)
		require.NoError(t, store.Set(ctx, "test:get", "not an object"))

		// Act
		var result TestData
		found, err := store.Get(ctx, "test:get", &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)

		var jsonErr *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &jsonErr)
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		store, _ := setup(t)

		err := store.Set(ctx, "test:set", make(chan int))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key test:set")
	})
}

func TestCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Writes and deletes in one transaction", func(t *testing.T) {
		// Arrange
		store, _ := setup(t)
		require.NoError(t, store.Set(ctx, "token", "abc"))

		// Act
		err := store.Commit(ctx,
			storage.Op{Key: "cart", Value: []string{"a"}},
			storage.Op{Key: "wishlist", Value: []string{}},
			storage.Op{Key: "token"},
		)

		// Assert
		require.NoError(t, err)

		var cart []string
		found, err := store.Get(ctx, "cart", &cart)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{"a"}, cart)

		var token string
		found, err = store.Get(ctx, "token", &token)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Failure - Nothing written when one value cannot be encoded", func(t *testing.T) {
		store, _ := setup(t)

		err := store.Commit(ctx,
			storage.Op{Key: "cart", Value: []string{"a"}},
			storage.Op{Key: "bad", Value: make(chan int)},
		)
		require.Error(t, err)

		var cart []string
		found, err := store.Get(ctx, "cart", &cart)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDurability(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storefront.db")

	store, err := boltstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "cart", []string{"a", "b"}))
	require.NoError(t, store.Close())

	reopened, err := boltstore.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	var cart []string
	found, err := reopened.Get(ctx, "cart", &cart)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, cart)
}
