package domain

type CheckoutState string

const (
	CheckoutStateSelecting  CheckoutState = "selecting"
	CheckoutStateProcessing CheckoutState = "processing"
	CheckoutStateSucceeded  CheckoutState = "succeeded"
	CheckoutStateFailed     CheckoutState = "failed"
)

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutStateSelecting:  {CheckoutStateProcessing},
	CheckoutStateProcessing: {CheckoutStateSucceeded, CheckoutStateFailed},
	CheckoutStateFailed:     {CheckoutStateSelecting},
}

// CanTransitionTo reports whether the session lifecycle allows moving from s to next.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	for _, allowed := range checkoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal is true for states the session only leaves by retry or close.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSucceeded || s == CheckoutStateFailed
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodWallet
}
