package models_test

import (
	"encoding/json"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLineItemJSON(t *testing.T) {
	t.Run("Success - Product fields are flattened", func(t *testing.T) {
		// Arrange
		item := models.CartLineItem{
			Product:  models.Product{ID: "A", Name: "Tee", Price: 100, Gender: "Mens"},
			Size:     "M",
			Quantity: 2,
		}

		// Act
		data, err := json.Marshal(item)
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))

		// Assert
		assert.Equal(t, "A", raw["_id"])
		assert.Equal(t, "M", raw["size"])
		assert.EqualValues(t, 2, raw["quantity"])
	})

	t.Run("Success - Non-numeric price and quantity decode as zero", func(t *testing.T) {
		var item models.CartLineItem

		err := json.Unmarshal([]byte(`{"_id":"A","name":"Tee","price":"abc","quantity":{}}`), &item)

		require.NoError(t, err)
		assert.Equal(t, 0.0, item.Price.Float64())
		assert.Equal(t, models.Quantity(0), item.Quantity)
	})

	t.Run("Success - Numeric strings are accepted", func(t *testing.T) {
		var item models.CartLineItem

		err := json.Unmarshal([]byte(`{"_id":"A","price":" 99.5 ","quantity":"3"}`), &item)

		require.NoError(t, err)
		assert.Equal(t, 99.5, item.Price.Float64())
		assert.Equal(t, models.Quantity(3), item.Quantity)
	})
}

func TestProductSizes(t *testing.T) {
	home := models.Product{ID: "H1", Gender: models.SizelessGender}
	mens := models.Product{ID: "M1", Gender: "Mens"}

	assert.True(t, home.Sizeless())
	assert.Nil(t, home.AvailableSizes())
	assert.Equal(t, []string{"S", "M", "L", "XL", "XXL"}, mens.AvailableSizes())
	assert.True(t, models.ValidSize("XL"))
	assert.False(t, models.ValidSize("XXXL"))
}

func TestWishlistEntryUsable(t *testing.T) {
	assert.True(t, models.WishlistEntry{Product: models.Product{ID: "A", Name: "Tee", ImageURL: "/a.jpg"}}.Usable())
	assert.False(t, models.WishlistEntry{Product: models.Product{ID: "A", Name: "Tee"}}.Usable())
	assert.False(t, models.WishlistEntry{Product: models.Product{Name: "Tee", ImageURL: "/a.jpg"}}.Usable())
}
