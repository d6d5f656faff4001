package repository

import "errors"

var (
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	ErrDuplicateReceipt       = errors.New("receipt already stored")
	ErrEventNotFound          = errors.New("outbox event not found")
)
