package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrExternalCall    = errors.New("external call failed")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrProductNotFound = errors.New("product not found")
)

const (
	CapabilityScan    = "scan"
	CapabilityCatalog = "catalog"
	CapabilityPayment = "payment"
)

// ExternalCallError wraps any failure of a remote capability: transport, non-2xx, success:false or an open breaker.
type ExternalCallError struct {
	Capability string
	Err        error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Capability, e.Err)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}

func (e *ExternalCallError) Is(target error) bool {
	return target == ErrExternalCall
}

// StatusError is a non-2xx or success:false response. Message is the server's error text, if any.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// isRejectedRequest reports a 4xx answer about the request itself. The remote side is healthy,
// so breakers must not count it.
func isRejectedRequest(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code >= http.StatusBadRequest && se.Code < http.StatusInternalServerError &&
		se.Code != http.StatusRequestTimeout && se.Code != http.StatusTooManyRequests
}
