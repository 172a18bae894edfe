package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"bookRecSystem/domain"
	"bookRecSystem/pkg/logger"
)

const (
	// final list size when the caller does not ask for one
	defaultRecommendations = 9

	// content similarity path
	contentNeighborCount = 9
	topContentCount      = 3

	// embedding path
	topEmbeddingCount        = 6
	embeddingRatingThreshold = 4
	maxUserRatingLen         = 10
	topSimilarCount          = 2
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	TitleOf(bookID uint64) (string, error)
	RawIndexOf(bookID uint64) (int, error)
	BookIDs(rawIndices []int) ([]uint64, error)
	GenresOf(bookID uint64) ([]string, error)
}

type ContentIndex interface {
	IndexOfTitle(titleKey string) (int, error)
	Row(rawIndex int) ([]float64, error)
}

type NeighborIndex interface {
	Neighbors(rawIndex, k int) ([]int, error)
}

type GenreRanker interface {
	GenreWise(ctx context.Context, genre string, nBooks int) ([]domain.BookDetail, error)
}

// ---- Usecase / Service ----

// Service blends content similarity, collaborative-embedding neighbors
// and genre-filtered popularity into one ranked, de-duplicated list.
// All of its inputs are immutable artifacts, so a single Service is
// safe for unlimited concurrent use.
type Service struct {
	catalog     CatalogRepository
	content     ContentIndex
	neighbors   NeighborIndex
	genreRanker GenreRanker
	rng         *rand.Rand
}

// NewService wires the recommendation combiner. The random source only
// drives tie-order diversity in the rating history; inject a fixed seed
// in tests.
func NewService(
	catalog CatalogRepository,
	content ContentIndex,
	neighbors NeighborIndex,
	genreRanker GenreRanker,
	rng *rand.Rand,
) *Service {
	return &Service{
		catalog:     catalog,
		content:     content,
		neighbors:   neighbors,
		genreRanker: genreRanker,
		rng:         rng,
	}
}

// RecommendForUser produces up to target book ids from a user's rating
// history: the top-rated book seeds the content path, the whole history
// feeds the embedding path, and the combiner merges both with the genre
// fallback. An empty history yields an empty list, not an error; the
// caller is expected to fall back to the global top books.
func (s *Service) RecommendForUser(
	ctx context.Context,
	ratings []domain.UserRating,
	target int,
) ([]uint64, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if target <= 0 {
		target = defaultRecommendations
	}
	if len(ratings) == 0 {
		return []uint64{}, nil
	}

	sorted := s.sortRatings(ratings)
	seed := sorted[0].BookID

	contentIDs, err := s.ContentRecommendations(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("content recommendations for seed %d: %w", seed, err)
	}

	embeddingIDs, err := s.EmbeddingRecommendations(ctx, sorted)
	if err != nil {
		return nil, fmt.Errorf("embedding recommendations: %w", err)
	}

	alreadyRated := domain.RatedBookIDs(ratings)

	best, err := s.CombineIDs(ctx, contentIDs, embeddingIDs, alreadyRated, target)
	if err != nil {
		return nil, err
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("recommend_for_user",
		"trace_id", tid,
		"seed", seed,
		"rated", len(ratings),
		"content_candidates", len(contentIDs),
		"embedding_candidates", len(embeddingIDs),
		"served", len(best),
		"target", target,
	)

	RecommendRequestsTotal.Inc()

	return best, nil
}

// sortRatings orders a copy of the history descending by rating value.
// Ties are shuffled first so equally rated books rotate between calls;
// the sort itself is stable, which keeps the shuffle the only source of
// tie order.
func (s *Service) sortRatings(ratings []domain.UserRating) []domain.UserRating {
	sorted := make([]domain.UserRating, len(ratings))
	copy(sorted, ratings)
	s.rng.Shuffle(len(sorted), func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BookRating > sorted[j].BookRating
	})
	return sorted
}
