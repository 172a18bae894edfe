package popularity

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"bookRecSystem/domain"
	"bookRecSystem/pkg/logger"
)

const (
	// head size of a genre ranking before sampling
	minGenreBookCount = 48

	genrePercentile = 0.85
	topNPercentile  = 0.95

	// rating threshold and list size for PopularAmongUsers
	popularRatingThreshold = 4
	defaultPopularCount    = 15
)

// ---- Repository interfaces ----

type BookSource interface {
	All() []domain.Book
	ByGenre(genre string) []domain.Book
	Details(bookIDs []uint64) ([]domain.BookDetail, error)
}

// ---- Usecase / Service ----

// Service ranks books by a shrinkage-adjusted weighted rating and
// returns randomly sampled heads for diversity across repeated calls.
type Service struct {
	books BookSource
	rng   *rand.Rand
}

// NewService builds the ranker. The random source is injected so tests
// can pin a seed.
func NewService(books BookSource, rng *rand.Rand) *Service {
	return &Service{books: books, rng: rng}
}

// weightedScore blends a book's own average rating R with the subset
// mean C, weighted by its vote count v against the percentile-derived
// minimum-votes threshold m:
//
//	W = (R*v + C*m) / (v + m)
func weightedScore(r float64, v int, c, m float64) float64 {
	fv := float64(v)
	return (r*fv + c*m) / (fv + m)
}

// rankByWeightedRating sorts a subset descending by weighted rating.
// The sort is stable so equal scores keep catalog order.
func rankByWeightedRating(subset []domain.Book, percentile float64) []domain.Book {
	counts := make([]int, len(subset))
	meanRating := 0.0
	for i, b := range subset {
		counts[i] = b.RatingsCount
		meanRating += b.AverageRating
	}
	meanRating /= float64(len(subset))

	m := quantile(counts, percentile)

	ranked := make([]domain.Book, len(subset))
	copy(ranked, subset)
	sort.SliceStable(ranked, func(i, j int) bool {
		wi := weightedScore(ranked[i].AverageRating, ranked[i].RatingsCount, meanRating, m)
		wj := weightedScore(ranked[j].AverageRating, ranked[j].RatingsCount, meanRating, m)
		return wi > wj
	})
	return ranked
}

// quantile computes the linearly interpolated percentile of the counts,
// matching the ranking used when the artifacts were produced.
func quantile(counts []int, p float64) float64 {
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	if len(sorted) == 1 {
		return float64(sorted[0])
	}

	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

// sample draws n books uniformly without replacement.
func (s *Service) sample(head []domain.Book, n int) []domain.Book {
	if n > len(head) {
		n = len(head)
	}
	picked := make([]domain.Book, len(head))
	copy(picked, head)
	s.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}

// GenreWise returns nBooks sampled from the top genre books ranked by
// weighted rating with the 0.85 percentile cutoff. The sample is drawn
// from the head of 48, not the head itself, so near-equally ranked
// books rotate across calls.
func (s *Service) GenreWise(ctx context.Context, genre string, nBooks int) ([]domain.BookDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	qualified := s.books.ByGenre(genre)
	if len(qualified) == 0 {
		return nil, fmt.Errorf("genre %q: %w", genre, domain.ErrNotFound)
	}

	ranked := rankByWeightedRating(qualified, genrePercentile)
	head := ranked
	if len(head) > minGenreBookCount {
		head = head[:minGenreBookCount]
	}

	picked := s.sample(head, nBooks)
	return detailsOf(picked), nil
}

// TopN returns a shuffled sample of the top N books of the whole
// catalog, ranked by weighted rating with the 0.95 percentile cutoff.
func (s *Service) TopN(ctx context.Context, topN int) ([]domain.BookDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if topN <= 0 {
		return []domain.BookDetail{}, nil
	}

	all := s.books.All()
	if len(all) == 0 {
		return nil, fmt.Errorf("catalog: %w", domain.ErrNotFound)
	}

	ranked := rankByWeightedRating(all, topNPercentile)
	head := ranked
	if len(head) > topN {
		head = head[:topN]
	}

	// the whole head, in random order
	picked := s.sample(head, len(head))
	return detailsOf(picked), nil
}

// PopularAmongUsers returns up to n books rated 4-5 by users, topped up
// from the global top list when there are not enough. The ratings are
// shuffled before the stable descending sort, so books tied on rating
// rotate across calls.
func (s *Service) PopularAmongUsers(ctx context.Context, allRatings []domain.UserRating, n int) ([]domain.BookDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if n <= 0 {
		n = defaultPopularCount
	}

	ratings := make([]domain.UserRating, len(allRatings))
	copy(ratings, allRatings)
	s.rng.Shuffle(len(ratings), func(i, j int) {
		ratings[i], ratings[j] = ratings[j], ratings[i]
	})
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].BookRating > ratings[j].BookRating
	})

	filtered := make([]uint64, 0, n)
	seen := make(map[uint64]struct{}, n)
	for _, r := range ratings {
		if r.BookRating < popularRatingThreshold || len(filtered) == n {
			break
		}
		if _, ok := seen[r.BookID]; ok {
			continue
		}
		seen[r.BookID] = struct{}{}
		filtered = append(filtered, r.BookID)
	}

	if remaining := n - len(filtered); remaining > 0 {
		top, err := s.TopN(ctx, 2*n)
		if err != nil {
			return nil, fmt.Errorf("top up popular books: %w", err)
		}
		for _, d := range top {
			if remaining == 0 {
				break
			}
			if _, ok := seen[d.BookID]; ok {
				continue
			}
			seen[d.BookID] = struct{}{}
			filtered = append(filtered, d.BookID)
			remaining--
		}
	}

	logger.Debug("popular_among_users",
		"requested", n,
		"served", len(filtered),
	)

	return s.books.Details(filtered)
}

func detailsOf(books []domain.Book) []domain.BookDetail {
	out := make([]domain.BookDetail, 0, len(books))
	for _, b := range books {
		out = append(out, b.Detail())
	}
	return out
}
