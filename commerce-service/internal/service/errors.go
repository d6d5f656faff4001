package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart               = errors.New("cart is empty, nothing to checkout")
	ErrNoBillableItems         = errors.New("no item in the cart is in the catalog")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrPaymentDeclined         = errors.New("payment declined")
	ErrInvalidImage            = errors.New("invalid image data")
	ErrClassifierNotConfigured = errors.New("classifier not configured")
	errReceiptIDCollision      = errors.New("could not allocate a unique receipt id")
)

// DeclinedError carries the authorizer's customer facing reason.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPaymentDeclined, e.Reason)
}

func (e *DeclinedError) Unwrap() error {
	return ErrPaymentDeclined
}
