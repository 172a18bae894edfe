package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// normalizeTitle builds the lookup key of the title index: lowercase
// with all spaces removed.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", ""))
}

// ContentRecommendations returns up to 9 book ids most similar to the
// seed book by content, most similar first. The seed's own row entry
// (self-similarity 1.0) is excluded. A seed title absent from the
// precomputed index is artifact drift and surfaces as NotFound.
func (s *Service) ContentRecommendations(ctx context.Context, bookID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	title, err := s.catalog.TitleOf(bookID)
	if err != nil {
		return nil, err
	}

	idx, err := s.content.IndexOfTitle(normalizeTitle(title))
	if err != nil {
		return nil, err
	}

	row, err := s.content.Row(idx)
	if err != nil {
		return nil, err
	}

	type simScore struct {
		rawIndex int
		score    float64
	}
	scores := make([]simScore, 0, len(row))
	for i, score := range row {
		scores = append(scores, simScore{rawIndex: i, score: score})
	}

	// stable sort: ties keep ascending raw-index order
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	// drop the self match at rank 0, keep ranks 1..9
	upper := 1 + contentNeighborCount
	if upper > len(scores) {
		upper = len(scores)
	}
	if len(scores) <= 1 {
		return []uint64{}, nil
	}

	rawIndices := make([]int, 0, upper-1)
	for _, sc := range scores[1:upper] {
		rawIndices = append(rawIndices, sc.rawIndex)
	}

	return s.catalog.BookIDs(rawIndices)
}
