package services

import "errors"

// Stats service errors
var (
	// ErrNoDeliveries signals an empty filter result. This is the
	// recoverable "no data for this selection" case, not a failure.
	ErrNoDeliveries = errors.New("no deliveries for this selection")

	// ErrBatterUnknown signals a batter absent from the dataset
	ErrBatterUnknown = errors.New("batter not found")

	// ErrInvalidWindow signals a rolling window outside the allowed range
	ErrInvalidWindow = errors.New("invalid rolling window")
)
