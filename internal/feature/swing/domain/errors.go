// Package domain defines domain-level errors for the swing feature.
package domain

import "errors"

// Classification errors. All of them describe a problem with the caller's input;
// classification is deterministic, so retrying never helps.
var (
	// ErrInsufficientData is returned when fewer than two price points are supplied.
	ErrInsufficientData = errors.New("at least two price points are required")

	// ErrDivision is returned when a percentage change would use a zero,
	// non-finite or missing reference price.
	ErrDivision = errors.New("invalid reference price for percentage change")

	// ErrMalformedInput is returned when a close is not a finite number or
	// the series contains the same trade date twice.
	ErrMalformedInput = errors.New("malformed price series")

	// ErrInvalidRange is returned when a requested date range or symbol is unusable.
	ErrInvalidRange = errors.New("invalid symbol or date range")
)
