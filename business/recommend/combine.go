package recommend

import (
	"context"
	"fmt"

	"bookRecSystem/pkg/logger"
)

// CombineIDs merges the ordered content-similarity candidates and the
// embedding candidates into one de-duplicated list of at most target
// ids. Tier order is the output order:
//
//	top-3 content, top-6 embedding, leftover content, genre fallback
//
// Candidate de-duplication is insertion-ordered throughout so "first k
// remaining" is well-defined. When every source is exhausted the result
// legitimately falls short of target; it is never padded.
func (s *Service) CombineIDs(
	ctx context.Context,
	contentIDs []uint64,
	embeddingIDs []uint64,
	alreadyRated []uint64,
	target int,
) ([]uint64, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if target <= 0 {
		target = defaultRecommendations
	}

	rated := toSet(alreadyRated)

	content := dedupExcluding(contentIDs, rated)
	topContent := firstN(content, topContentCount)

	embedExcluded := toSet(alreadyRated)
	for _, id := range topContent {
		embedExcluded[id] = struct{}{}
	}
	embedding := dedupExcluding(embeddingIDs, embedExcluded)
	topEmbedding := firstN(embedding, topEmbeddingCount)

	best := make([]uint64, 0, target)
	best = append(best, topContent...)
	best = append(best, topEmbedding...)

	if len(best) >= target {
		return best[:target], nil
	}

	// shortfall: n1 from the unused content tail, n2 from the
	// most-common-genre popularity fallback
	shortfall := target - len(best)
	n1 := (shortfall + 1) / 2
	n2 := shortfall / 2

	upper := topContentCount*2 + n1
	if upper > len(content) {
		upper = len(content)
	}
	var leftoverSlice []uint64
	if upper > topContentCount {
		leftoverSlice = content[topContentCount:upper]
	}

	bestSet := toSet(best)
	leftovers := make([]uint64, 0, n1)
	for _, id := range leftoverSlice {
		if len(leftovers) == n1 {
			break
		}
		if _, ok := bestSet[id]; ok {
			continue
		}
		leftovers = append(leftovers, id)
	}

	pool := make([]uint64, 0, len(best)+len(alreadyRated)+len(leftovers))
	pool = append(pool, best...)
	pool = append(pool, alreadyRated...)
	pool = append(pool, leftovers...)

	genrePicks, err := s.genreRecommendations(ctx, pool, n2)
	if err != nil {
		return nil, err
	}

	if len(leftovers) > 0 {
		FallbackServedTotal.WithLabelValues("content_leftover").Add(float64(len(leftovers)))
	}
	if len(genrePicks) > 0 {
		FallbackServedTotal.WithLabelValues("genre").Add(float64(len(genrePicks)))
	}

	best = append(best, leftovers...)
	best = append(best, genrePicks...)

	if len(best) < target {
		tid := TraceIDFromContext(ctx)
		logger.Debug("recommend_shortfall",
			"trace_id", tid,
			"target", target,
			"served", len(best),
		)
	}

	return best, nil
}

// toSet copies ids into a membership set.
func toSet(ids []uint64) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// dedupExcluding keeps the first occurrence of each id not present in
// excluded, preserving input order.
func dedupExcluding(ids []uint64, excluded map[uint64]struct{}) []uint64 {
	out := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := excluded[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func firstN(ids []uint64, n int) []uint64 {
	if n > len(ids) {
		n = len(ids)
	}
	return ids[:n]
}
