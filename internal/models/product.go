package models

// SizelessGender marks home goods, which are sold without a size.
const SizelessGender = "Home"

var Sizes = []string{"S", "M", "L", "XL", "XXL"}

type Product struct {
	ID            string  `json:"_id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Brand         string  `json:"brand,omitempty"`
	Category      string  `json:"category,omitempty"`
	Gender        string  `json:"gender,omitempty"`
	Type          string  `json:"type,omitempty"`
	Description   string  `json:"description,omitempty"`
	Price         Price   `json:"price" validate:"gte=0"`
	OriginalPrice Price   `json:"originalPrice,omitempty"`
	Discount      float64 `json:"discount,omitempty"`
	Stock         int     `json:"stock"`
	Rating        float64 `json:"rating,omitempty"`
	Buyers        int     `json:"buyers,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

func (p Product) Sizeless() bool {
	return p.Gender == SizelessGender
}

// Sizes offered on the detail view; nil for sizeless products.
func (p Product) AvailableSizes() []string {
	if p.Sizeless() {
		return nil
	}

	sizes := make([]string, len(Sizes))
	copy(sizes, Sizes)

	return sizes
}

func ValidSize(size string) bool {
	for _, s := range Sizes {
		if s == size {
			return true
		}
	}

	return false
}

type SearchResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    []Product `json:"data"`
}

// ProductDetail is the detail view of a single product.
type ProductDetail struct {
	Product    Product  `json:"product"`
	InWishlist bool     `json:"inWishlist"`
	InCart     bool     `json:"inCart"`
	Sizes      []string `json:"sizes,omitempty"`
}
