package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/state"
	"github.com/aaravmahajanofficial/storefront/internal/storage"
	"github.com/aaravmahajanofficial/storefront/internal/storage/redisstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newState(t *testing.T) (*state.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	backend := redisstore.New(client)
	t.Cleanup(func() { _ = backend.Close() })

	st, err := state.Open(context.Background(), backend, "")
	require.NoError(t, err)

	return st, mr
}

func makeToken(t *testing.T, userID string, exp time.Time) string {
	t.Helper()

	claims := models.Claims{
		UserID:           userID,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	return token
}

func seed(t *testing.T, st *state.Store, fn func(tx *state.Tx)) {
	t.Helper()

	require.NoError(t, st.Mutate(context.Background(), func(tx *state.Tx) error {
		fn(tx)
		return nil
	}))
}

func shirt(id string, price float64) *models.Product {
	return &models.Product{ID: id, Name: "Shirt " + id, Gender: "Mens", Category: "Topwear", Brand: "Nike", Price: models.Price(price), ImageURL: "/img/" + id + ".jpg"}
}

func lamp(id string, price float64) *models.Product {
	return &models.Product{ID: id, Name: "Lamp " + id, Gender: models.SizelessGender, Category: "Decor", Price: models.Price(price), ImageURL: "/img/" + id + ".jpg"}
}

func persisted(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()

	if !mr.Exists(storage.Key("", key)) {
		return ""
	}

	v, err := mr.Get(storage.Key("", key))
	require.NoError(t, err)

	return v
}
