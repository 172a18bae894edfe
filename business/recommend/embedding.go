package recommend

import (
	"context"
	"fmt"

	"bookRecSystem/domain"
)

// EmbeddingRecommendations returns candidate book ids near the user's
// best-rated books in the collaborative-embedding space. The history
// must already be sorted descending by rating value. Selection walks
// the history and stops at the first rating below 4 or once the loop
// index passes maxUserRatingLen. The index check runs against the
// position, so up to 11 ratings can be selected before the cutoff
// trips. That boundary is load-bearing; tests pin it.
//
// Each selected book contributes its top 2 precomputed neighbors.
// Duplicates across contributors are kept; the combiner de-duplicates.
func (s *Service) EmbeddingRecommendations(ctx context.Context, sortedRatings []domain.UserRating) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	bestUserBooks := make([]uint64, 0, maxUserRatingLen+1)
	for i, r := range sortedRatings {
		if r.BookRating < embeddingRatingThreshold || i > maxUserRatingLen {
			break
		}
		bestUserBooks = append(bestUserBooks, r.BookID)
	}

	var similarRawIndices []int
	for _, bookID := range bestUserBooks {
		rawIndex, err := s.catalog.RawIndexOf(bookID)
		if err != nil {
			return nil, err
		}

		nbrs, err := s.neighbors.Neighbors(rawIndex, topSimilarCount)
		if err != nil {
			return nil, err
		}
		similarRawIndices = append(similarRawIndices, nbrs...)
	}

	if len(similarRawIndices) == 0 {
		return []uint64{}, nil
	}

	return s.catalog.BookIDs(similarRawIndices)
}
