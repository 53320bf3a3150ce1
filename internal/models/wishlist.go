package models

// WishlistEntry is a product snapshot without size or quantity.
type WishlistEntry struct {
	Product
}

// Usable reports whether the entry has what the wishlist view needs to render it.
func (e WishlistEntry) Usable() bool {
	return e.ID != "" && e.Name != "" && e.ImageURL != ""
}

type WishlistView struct {
	Items []WishlistEntry `json:"items"`
}

type ToggleWishlistResponse struct {
	ProductID  string `json:"productId"`
	InWishlist bool   `json:"inWishlist"`
}
