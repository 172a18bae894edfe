package rest

import (
	"errors"
	"net/http"

	"bookRecSystem/domain"
)

type ResponseError struct {
	Message string `json:"message"`
}

// statusOf maps core errors onto HTTP statuses. NotFound means
// catalog/artifact drift for lookups the caller named, InvalidInput is
// a boundary rejection, everything else is internal.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
