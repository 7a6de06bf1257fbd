package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrCurrencyMismatch indicates prices with different currency codes
	// were combined; mixed-currency carts are not supported.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)
