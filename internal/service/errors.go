package service

import "errors"

// Validation errors surfaced to callers as 4xx. None of them is retried and
// none reaches a payment provider.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product not found or unavailable")
	ErrPriceMismatch      = errors.New("Price mismatch detected. Please refresh your cart.")
	ErrBadQuantity        = errors.New("item quantity must be positive")
	ErrMissingReference   = errors.New("missing reference number")
)
