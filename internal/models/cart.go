package models

// CartLineItem is a product snapshot placed in the cart. Identity is
// (product id, size).
type CartLineItem struct {
	Product
	Size     string   `json:"size,omitempty"`
	Quantity Quantity `json:"quantity"`
}

func (i CartLineItem) Matches(productID, size string) bool {
	return i.ID == productID && i.Size == size
}

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartView struct {
	Items     []CartLineItem `json:"items"`
	ItemCount int            `json:"itemCount"`
	Total     string         `json:"total"`
}
