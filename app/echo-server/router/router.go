package router

import (
	"bookRecSystem/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupBookRoutes(api *echo.Group, handler *rest.BooksHandler) {
	books := api.Group("/books")

	books.GET("/top", handler.TopBooks)
	books.GET("/genre/:genre", handler.GenreBooks)
	books.POST("/popular", handler.PopularBooks)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations")
	reco.POST("", handler.Recommend)
}
