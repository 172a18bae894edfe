package rest

import (
	"context"
	"net/http"

	"bookRecSystem/business/recommend"
	"bookRecSystem/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	BooksHandler struct {
		validate   *validator.Validate
		popularity PopularityService
		catalog    CatalogReader
	}

	PopularityService interface {
		TopN(ctx context.Context, topN int) ([]domain.BookDetail, error)
		GenreWise(ctx context.Context, genre string, nBooks int) ([]domain.BookDetail, error)
		PopularAmongUsers(ctx context.Context, allRatings []domain.UserRating, n int) ([]domain.BookDetail, error)
	}

	TopBooksQuery struct {
		N int `query:"n"`
	}

	GenreBooksQuery struct {
		N int `query:"n"`
	}

	PopularBooksRequest struct {
		Ratings []RatingToken `json:"ratings" validate:"dive"`
		N       int           `json:"n"`
	}
)

const (
	defaultTopBooks     = 400
	defaultGenreBooks   = 16
	defaultPopularBooks = 15
)

func NewBooksHandler(popularity PopularityService, catalog CatalogReader) *BooksHandler {
	return &BooksHandler{
		validate:   validator.New(),
		popularity: popularity,
		catalog:    catalog,
	}
}

// GET /api/v1/books/top?n=400
func (h *BooksHandler) TopBooks(c echo.Context) error {
	var q TopBooksQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = defaultTopBooks
	}

	books, err := h.popularity.TopN(c.Request().Context(), q.N)
	if err != nil {
		return c.JSON(statusOf(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(books))
}

// GET /api/v1/books/genre/:genre?n=16
func (h *BooksHandler) GenreBooks(c echo.Context) error {
	genre := c.Param("genre")
	if !recommend.KnownGenre(genre) {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "unknown genre"})
	}

	var q GenreBooksQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.N <= 0 {
		q.N = defaultGenreBooks
	}

	books, err := h.popularity.GenreWise(c.Request().Context(), genre, q.N)
	if err != nil {
		return c.JSON(statusOf(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(books))
}

// POST /api/v1/books/popular
//
// The caller supplies the rating observations; this service does not
// store them.
func (h *BooksHandler) PopularBooks(c echo.Context) error {
	var req PopularBooksRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.N <= 0 {
		req.N = defaultPopularBooks
	}

	ratings := make([]domain.UserRating, 0, len(req.Ratings))
	for _, t := range req.Ratings {
		bookID, err := ParseBookID(t.BookID, h.catalog)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		rating, err := ParseRating(t.Rating)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		ratings = append(ratings, domain.UserRating{BookID: bookID, BookRating: rating})
	}

	books, err := h.popularity.PopularAmongUsers(c.Request().Context(), ratings, req.N)
	if err != nil {
		return c.JSON(statusOf(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(books))
}
