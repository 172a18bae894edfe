package domain

import "errors"

var (
	// ErrNotFound is returned when a book id, title key or raw index has
	// no entry in the catalog or a precomputed artifact. It signals
	// drift between the catalog and the model files and must reach the
	// caller instead of being swallowed.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed rating or book-id
	// tokens at the boundary, before they reach the core.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownGenre is returned when a genre token observed in
	// catalog data is missing from the fixed priority list. The
	// priority list must be a superset of every catalog genre, so this
	// is a fatal configuration problem.
	ErrUnknownGenre = errors.New("genre missing from priority list")
)
