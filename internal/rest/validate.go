package rest

import (
	"fmt"
	"strconv"

	"bookRecSystem/domain"
)

// CatalogReader is what the handlers need from the catalog: id
// validation plus the detail projection for responses.
type CatalogReader interface {
	Contains(bookID uint64) bool
	Details(bookIDs []uint64) ([]domain.BookDetail, error)
}

// ParseRating validates a rating token: a non-negative integer no
// greater than 5. Anything else is InvalidInput.
func ParseRating(token string) (int, error) {
	if token == "" {
		return 0, fmt.Errorf("empty rating: %w", domain.ErrInvalidInput)
	}
	rating, err := strconv.Atoi(token)
	if err != nil || rating < 0 {
		return 0, fmt.Errorf("rating %q: %w", token, domain.ErrInvalidInput)
	}
	if rating > 5 {
		return 0, fmt.Errorf("rating %d out of range: %w", rating, domain.ErrInvalidInput)
	}
	return rating, nil
}

// ParseBookID validates a book-id token: an integer present in the
// catalog. Anything else is InvalidInput.
func ParseBookID(token string, catalog CatalogReader) (uint64, error) {
	if token == "" {
		return 0, fmt.Errorf("empty book id: %w", domain.ErrInvalidInput)
	}
	id, err := strconv.ParseUint(token, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("book id %q: %w", token, domain.ErrInvalidInput)
	}
	if !catalog.Contains(id) {
		return 0, fmt.Errorf("book id %d not in catalog: %w", id, domain.ErrInvalidInput)
	}
	return id, nil
}
