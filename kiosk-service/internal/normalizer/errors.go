package normalizer

import (
	"errors"
	"fmt"
)

var ErrInvalidItem = errors.New("invalid item")

// InvalidItemError names the field that made a raw item unusable.
type InvalidItemError struct {
	Field  string
	Reason string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("invalid item: %s %s", e.Field, e.Reason)
}

func (e *InvalidItemError) Is(target error) bool {
	return target == ErrInvalidItem
}
