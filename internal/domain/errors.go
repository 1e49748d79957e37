package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnknownSize indicates a package has no tier for the requested size.
	ErrUnknownSize = errors.New("unknown package size")

	// ErrUnknownDrink indicates a selection references a drink slug that is
	// not in the catalog.
	ErrUnknownDrink = errors.New("unknown drink")

	// ErrInvalidQuantity indicates a basket line or drink selection with a
	// non-positive count.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidChecksum indicates a gateway callback failed signature verification.
	ErrInvalidChecksum = errors.New("invalid callback checksum")
)
