// Package domain defines domain-level errors for the prices feature.
package domain

import "errors"

var (
	// ErrInvalidSymbol is returned when a price is stored without a security code.
	ErrInvalidSymbol = errors.New("symbol is required")

	// ErrInvalidPrice is returned when a close is not a finite positive number.
	ErrInvalidPrice = errors.New("close must be a finite positive number")

	// ErrMalformedRow is returned when an input row cannot be decoded into a price.
	ErrMalformedRow = errors.New("malformed price row")
)
