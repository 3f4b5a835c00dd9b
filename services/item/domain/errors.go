package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates item fields that cannot be stored, such as a
	// price that is not a finite number.
	ErrInvalidItem = errors.New("invalid item")
)
