package scanner

import "errors"

var (
	ErrScanInProgress = errors.New("a scan is already in progress")
	ErrEmptyImage     = errors.New("image is required")
)
