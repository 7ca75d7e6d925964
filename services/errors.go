package services

import "errors"

// Sentinel errors shared by the cart and order services. Controllers map
// these to HTTP status codes; anything else is treated as a persistence
// failure (500).
var (
	ErrForbidden            = errors.New("forbidden")
	ErrProductNotFound      = errors.New("product not found")
	ErrCartNotFound         = errors.New("cart not found")
	ErrItemNotFound         = errors.New("item not in cart")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidAddress       = errors.New("shipping address is required")
	ErrInvalidPaymentMethod = errors.New("payment method must be cash or card")
	ErrInvalidStatus        = errors.New("unrecognized order status")
)
