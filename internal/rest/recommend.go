package rest

import (
	"context"
	"net/http"
	"time"

	"bookRecSystem/app/echo-server/metrics"
	"bookRecSystem/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate         *validator.Validate
		recommendService RecommendService
		catalog          CatalogReader
	}

	RecommendService interface {
		RecommendForUser(ctx context.Context, ratings []domain.UserRating, target int) ([]uint64, error)
	}

	// RatingToken carries the raw string tokens of one observation.
	// They are validated here, before the core ever sees them.
	RatingToken struct {
		BookID string `json:"book_id" validate:"required"`
		Rating string `json:"rating" validate:"required"`
	}

	RecommendRequest struct {
		UserID  uint          `json:"user_id"`
		Ratings []RatingToken `json:"ratings" validate:"required,min=1,dive"`
		N       int           `json:"n"`
	}
)

func NewRecommendHandler(svc RecommendService, catalog CatalogReader) *RecommendHandler {
	return &RecommendHandler{
		validate:         validator.New(),
		recommendService: svc,
		catalog:          catalog,
	}
}

// POST /api/v1/recommendations
func (h *RecommendHandler) Recommend(c echo.Context) error {
	start := time.Now()

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
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
		ratings = append(ratings, domain.UserRating{
			UserID:     req.UserID,
			BookID:     bookID,
			BookRating: rating,
		})
	}

	ids, err := h.recommendService.RecommendForUser(c.Request().Context(), ratings, req.N)
	if err != nil {
		return c.JSON(statusOf(err), ResponseError{Message: err.Error()})
	}

	details, err := h.catalog.Details(ids)
	if err != nil {
		return c.JSON(statusOf(err), ResponseError{Message: err.Error()})
	}

	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendTotal.Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(details))
}
