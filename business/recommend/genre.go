package recommend

import (
	"context"
	"fmt"

	"bookRecSystem/domain"
)

// priorityList fixes the tie-break precedence between genres: earlier
// means higher priority. It must be a superset of every genre token in
// the catalog.
var priorityList = []string{
	"fiction", "fantasy", "classics", "contemporary", "mystery",
	"nonfiction", "paranormal", "romance", "history", "thriller",
	"horror", "memoir", "comics", "biography", "philosophy",
	"science", "crime", "psychology", "christian", "business",
	"poetry", "music", "religion", "manga", "art",
	"spirituality", "cookbooks", "travel", "ebooks", "sports",
	"suspense",
}

var priorityIndex = func() map[string]int {
	m := make(map[string]int, len(priorityList))
	for i, g := range priorityList {
		m[g] = i
	}
	return m
}()

// KnownGenre reports whether a genre token appears in the priority
// list. Boundary callers validate genre input with it before reaching
// the ranker.
func KnownGenre(genre string) bool {
	_, ok := priorityIndex[genre]
	return ok
}

// mostCommonGenre finds the single most frequent genre token across the
// pool, every book contributing all of its tokens. Ties resolve to the
// token earliest in the priority list; a tied token missing from the
// list is an inconsistent static configuration and fails loudly. An
// empty or genre-less pool yields ok=false.
func (s *Service) mostCommonGenre(pool []uint64) (string, bool, error) {
	counts := make(map[string]int)
	for _, id := range uniqueIDs(pool) {
		genres, err := s.catalog.GenresOf(id)
		if err != nil {
			return "", false, err
		}
		for _, g := range genres {
			counts[g]++
		}
	}

	if len(counts) == 0 {
		return "", false, nil
	}

	maxCount := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}

	best := ""
	bestPriority := len(priorityList)
	for g, n := range counts {
		if n != maxCount {
			continue
		}
		p, ok := priorityIndex[g]
		if !ok {
			return "", false, fmt.Errorf("genre %q: %w", g, domain.ErrUnknownGenre)
		}
		if p < bestPriority {
			bestPriority = p
			best = g
		}
	}

	return best, true, nil
}

// genreRecommendations returns up to n popularity-ranked books of the
// pool's dominant genre, excluding everything already in the pool. A
// pool without genres skips the fallback and returns an empty list.
func (s *Service) genreRecommendations(ctx context.Context, pool []uint64, n int) ([]uint64, error) {
	genre, ok, err := s.mostCommonGenre(pool)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []uint64{}, nil
	}

	candidates, err := s.genreRanker.GenreWise(ctx, genre, 2*n)
	if err != nil {
		return nil, fmt.Errorf("genre fallback %q: %w", genre, err)
	}

	poolSet := toSet(pool)
	picks := make([]uint64, 0, n)
	for _, d := range candidates {
		if len(picks) == n {
			break
		}
		if _, seen := poolSet[d.BookID]; seen {
			continue
		}
		poolSet[d.BookID] = struct{}{}
		picks = append(picks, d.BookID)
	}

	return picks, nil
}

// uniqueIDs deduplicates pool ids before counting so one book cannot
// vote twice for its genres.
func uniqueIDs(pool []uint64) []uint64 {
	return dedupExcluding(pool, nil)
}
