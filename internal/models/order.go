package models

import "time"

type ShippingDetails struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	City    string `json:"city" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type CreateOrderRequest struct {
	UserID          string          `json:"userId"`
	Items           []CartLineItem  `json:"items"`
	TotalPrice      string          `json:"totalPrice"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
}

type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId,omitempty"`
	Items           []CartLineItem  `json:"items"`
	TotalPrice      Price           `json:"totalPrice"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	Status          string          `json:"status,omitempty"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
}

type CheckoutResponse struct {
	State         CheckoutState `json:"state"`
	Order         *Order        `json:"order,omitempty"`
	Notice        string        `json:"notice,omitempty"`
	Redirect      string        `json:"redirect,omitempty"`
	RedirectAfter string        `json:"redirectAfter,omitempty"`
}
