package checkout

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to checkout")
	ErrNoSession            = errors.New("no checkout session is open")
	ErrSessionOpen          = errors.New("a checkout session is already open")
	ErrPaymentInProgress    = errors.New("payment is being processed")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrIllegalTransition    = errors.New("illegal transition of checkout state")
)
