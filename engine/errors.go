package engine

import "errors"

// Engine error taxonomy. Controllers translate these into HTTP responses;
// all of them are rejected before any state mutation.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound marks an absent entity or one not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientPoints marks a redemption the user cannot afford.
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrOutOfStock marks a redemption against an exhausted store item.
	ErrOutOfStock = errors.New("item out of stock")
)
