package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Artifacts ArtifactsConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

// ArtifactsConfig points at the precomputed model files and the catalog
// CSV. All of them are loaded once at startup and never reloaded.
type ArtifactsConfig struct {
	BooksCSVPath string

	// Count-vectorizer content similarity
	CosineSimPath  string
	TitleIndexPath string

	// Collaborative-filtering embedding
	RawToInnerPath string
	InnerToRawPath string
	EmbeddingPath  string
	SimBooksPath   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Artifacts: ArtifactsConfig{
			BooksCSVPath:   getEnv("BOOKS_CSV_PATH", "static/dataset/books.csv"),
			CosineSimPath:  getEnv("COSINE_SIM_PATH", "static/model_files/cv/cosine_rating_sim.json"),
			TitleIndexPath: getEnv("TITLE_INDEX_PATH", "static/model_files/cv/indices.json"),
			RawToInnerPath: getEnv("RAW_TO_INNER_PATH", "static/model_files/surprise/book_raw_to_inner_id.json"),
			InnerToRawPath: getEnv("INNER_TO_RAW_PATH", "static/model_files/surprise/book_inner_id_to_raw.json"),
			EmbeddingPath:  getEnv("EMBEDDING_PATH", "static/model_files/surprise/book_embedding.json"),
			SimBooksPath:   getEnv("SIM_BOOKS_PATH", "static/model_files/surprise/sim_books.json"),
		},
	}

	if cfg.Artifacts.BooksCSVPath == "" {
		return nil, errors.New("missing books csv path")
	}
	if cfg.Artifacts.CosineSimPath == "" || cfg.Artifacts.TitleIndexPath == "" {
		return nil, errors.New("missing content similarity artifact paths")
	}
	if cfg.Artifacts.SimBooksPath == "" {
		return nil, errors.New("missing embedding neighbor artifact path")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
