package redisstore_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/aaravmahajanofficial/storefront/internal/storage/redisstore"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestData struct {
	Field1 string `json:"field1"`
	Field2 int    `json:"field2"`
}

func setup(t *testing.T) (storage.Store, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return redisstore.New(client), mock
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	testKey := "device-1:cart"
	testValue := TestData{Field1: "value1", Field2: 123}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		// Act
		found, err := store.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, testValue, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Key Not Found", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetErr(redis.Nil)

		// Act
		found, err := store.Get(ctx, testKey, &result)

		// Assert
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		var result TestData

		expectedErr := errors.New("redis connection error")

		mock.ExpectGet(testKey).SetErr(expectedErr)

		// Act
		found, err := store.Get(ctx, testKey, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to get key %s from redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Unmarshal Error", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		var result TestData

		mock.ExpectGet(testKey).SetVal(`{"field1": "value1", "field2": "not_an_int"}`)

		// Act
		found, err := store.Get(ctx, testKey, &result)

		// Assert
		require.Error(t, err)
		assert.False(t, found)

		var jsonErr *json.UnmarshalTypeError

		assert.ErrorAs(t, err, &jsonErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	testKey := "device-1:wishlist"
	testValue := TestData{Field1: "valueSet", Field2: 456}
	jsonData, err := json.Marshal(testValue)
	require.NoError(t, err)

	t.Run("Success - Stored Without Expiry", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		mock.ExpectSet(testKey, jsonData, 0).SetVal("OK")

		// Act
		err := store.Set(ctx, testKey, testValue)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)

		// Act
		err := store.Set(ctx, testKey, make(chan int))

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key "+testKey)

		var jsonErr *json.UnsupportedTypeError

		assert.ErrorAs(t, err, &jsonErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)
		expectedErr := errors.New("redis SET failed")

		mock.ExpectSet(testKey, jsonData, 0).SetErr(expectedErr)

		// Act
		err := store.Set(ctx, testKey, testValue)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to set key %s in redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	testKey := "device-1:token"

	t.Run("Success", func(t *testing.T) {
		store, mock := setup(t)

		mock.ExpectDel(testKey).SetVal(1)

		require.NoError(t, store.Delete(ctx, testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		store, mock := setup(t)
		expectedErr := errors.New("redis DEL failed")

		mock.ExpectDel(testKey).SetErr(expectedErr)

		err := store.Delete(ctx, testKey)

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to delete key %s from redis", testKey))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCommit(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Set and Delete in one transaction", func(t *testing.T) {
		// Arrange
		store, mock := setup(t)
		cart := []string{"a"}
		cartJSON, err := json.Marshal(cart)
		require.NoError(t, err)

		mock.ExpectTxPipeline()
		mock.ExpectSet("cart", cartJSON, 0).SetVal("OK")
		mock.ExpectDel("token").SetVal(1)
		mock.ExpectTxPipelineExec()

		// Act
		err = store.Commit(ctx, storage.Op{Key: "cart", Value: cart}, storage.Op{Key: "token"})

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No ops is a no-op", func(t *testing.T) {
		store, mock := setup(t)

		require.NoError(t, store.Commit(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Marshal Error before any command", func(t *testing.T) {
		store, mock := setup(t)

		err := store.Commit(ctx, storage.Op{Key: "cart", Value: make(chan int)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to marshal value for key cart")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestKey(t *testing.T) {
	assert.Equal(t, "device-1:cart", storage.Key("device-1", storage.CartKey))
	assert.Equal(t, "wishlist", storage.Key("", storage.WishlistKey))
	assert.Equal(t, "orderDetails", storage.OrderDetailsKey)
	assert.Equal(t, "token", storage.TokenKey)
}
