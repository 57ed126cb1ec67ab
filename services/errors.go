package services

import "errors"

var (
	ErrCouponInvalid   = errors.New("invalid coupon code")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponMinOrder  = errors.New("coupon minimum order not met")
	ErrCouponExhausted = errors.New("coupon usage limit reached")

	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is unavailable")
	ErrVariantRequired    = errors.New("size and color must be selected")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrAddressNotFound    = errors.New("address not found")
	ErrOrderNotFound      = errors.New("order not found")

	ErrPaymentNotConfigured = errors.New("payment gateway is not configured")
)
