package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookRecSystem/app/echo-server/metrics"
	"bookRecSystem/app/echo-server/router"
	"bookRecSystem/business/popularity"
	"bookRecSystem/business/recommend"
	"bookRecSystem/internal/middleware"
	"bookRecSystem/internal/repository/artifacts"
	"bookRecSystem/internal/rest"
	"bookRecSystem/pkg/config"
	"bookRecSystem/pkg/logger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting BookRecSystem", "version", cfg.App.Version)

	// Load the precomputed artifacts. Everything is read-only after
	// this point, so the whole recommendation path runs lock-free.
	catalog, err := artifacts.LoadCatalog(cfg.Artifacts.BooksCSVPath)
	if err != nil {
		logger.Fatal("Failed to load catalog", "error", err)
	}
	logger.Info("Catalog loaded", "books", catalog.Size())

	contentIndex, err := artifacts.LoadContentIndex(cfg.Artifacts.CosineSimPath, cfg.Artifacts.TitleIndexPath)
	if err != nil {
		logger.Fatal("Failed to load content similarity index", "error", err)
	}
	logger.Info("Content similarity index loaded", "size", contentIndex.Size())

	embeddingIndex, err := artifacts.LoadEmbeddingIndex(artifacts.EmbeddingPaths{
		RawToInner: cfg.Artifacts.RawToInnerPath,
		InnerToRaw: cfg.Artifacts.InnerToRawPath,
		Vectors:    cfg.Artifacts.EmbeddingPath,
		Neighbors:  cfg.Artifacts.SimBooksPath,
	})
	if err != nil {
		logger.Fatal("Failed to load embedding index", "error", err)
	}
	logger.Info("Embedding index loaded")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Init metrics
	metrics.Init()

	// Init service
	popularityService := popularity.NewService(catalog, rng)
	recommendService := recommend.NewService(catalog, contentIndex, embeddingIndex, popularityService, rng)

	// Init handler
	booksHandler := rest.NewBooksHandler(popularityService, catalog)
	recommendHandler := rest.NewRecommendHandler(recommendService, catalog)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestTrace())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupBookRoutes(api, booksHandler)
	router.SetupRecommendationRoutes(api, recommendHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
