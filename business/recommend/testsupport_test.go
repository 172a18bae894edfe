package recommend

import (
	"context"
	"fmt"
	"math/rand"

	"bookRecSystem/domain"
)

// in-memory doubles for the artifact repositories

type fakeCatalog struct {
	titles map[uint64]string
	raw    map[uint64]int
	byRaw  map[int]uint64
	genres map[uint64][]string
}

func (f *fakeCatalog) TitleOf(bookID uint64) (string, error) {
	t, ok := f.titles[bookID]
	if !ok {
		return "", fmt.Errorf("book id %d: %w", bookID, domain.ErrNotFound)
	}
	return t, nil
}

func (f *fakeCatalog) RawIndexOf(bookID uint64) (int, error) {
	r, ok := f.raw[bookID]
	if !ok {
		return 0, fmt.Errorf("book id %d: %w", bookID, domain.ErrNotFound)
	}
	return r, nil
}

func (f *fakeCatalog) BookIDs(rawIndices []int) ([]uint64, error) {
	ids := make([]uint64, 0, len(rawIndices))
	for _, idx := range rawIndices {
		id, ok := f.byRaw[idx]
		if !ok {
			return nil, fmt.Errorf("raw index %d: %w", idx, domain.ErrNotFound)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeCatalog) GenresOf(bookID uint64) ([]string, error) {
	g, ok := f.genres[bookID]
	if !ok {
		return nil, fmt.Errorf("book id %d: %w", bookID, domain.ErrNotFound)
	}
	return g, nil
}

type fakeContentIndex struct {
	indices map[string]int
	rows    map[int][]float64
}

func (f *fakeContentIndex) IndexOfTitle(titleKey string) (int, error) {
	idx, ok := f.indices[titleKey]
	if !ok {
		return 0, fmt.Errorf("title key %q: %w", titleKey, domain.ErrNotFound)
	}
	return idx, nil
}

func (f *fakeContentIndex) Row(rawIndex int) ([]float64, error) {
	row, ok := f.rows[rawIndex]
	if !ok {
		return nil, fmt.Errorf("similarity row %d: %w", rawIndex, domain.ErrNotFound)
	}
	return row, nil
}

type fakeNeighborIndex struct {
	neighbors map[int][]int
}

func (f *fakeNeighborIndex) Neighbors(rawIndex, k int) ([]int, error) {
	ranked, ok := f.neighbors[rawIndex]
	if !ok {
		return nil, fmt.Errorf("neighbors of raw index %d: %w", rawIndex, domain.ErrNotFound)
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k], nil
}

type genreCall struct {
	genre string
	n     int
}

type fakeGenreRanker struct {
	byGenre map[string][]domain.BookDetail
	calls   []genreCall
}

func (f *fakeGenreRanker) GenreWise(_ context.Context, genre string, nBooks int) ([]domain.BookDetail, error) {
	f.calls = append(f.calls, genreCall{genre: genre, n: nBooks})
	candidates := f.byGenre[genre]
	if nBooks > len(candidates) {
		nBooks = len(candidates)
	}
	return candidates[:nBooks], nil
}

func newTestService(
	catalog *fakeCatalog,
	content *fakeContentIndex,
	neighbors *fakeNeighborIndex,
	ranker *fakeGenreRanker,
	seed int64,
) *Service {
	if catalog == nil {
		catalog = &fakeCatalog{
			titles: map[uint64]string{},
			raw:    map[uint64]int{},
			byRaw:  map[int]uint64{},
			genres: map[uint64][]string{},
		}
	}
	if content == nil {
		content = &fakeContentIndex{indices: map[string]int{}, rows: map[int][]float64{}}
	}
	if neighbors == nil {
		neighbors = &fakeNeighborIndex{neighbors: map[int][]int{}}
	}
	if ranker == nil {
		ranker = &fakeGenreRanker{byGenre: map[string][]domain.BookDetail{}}
	}
	return NewService(catalog, content, neighbors, ranker, rand.New(rand.NewSource(seed)))
}

func details(ids ...uint64) []domain.BookDetail {
	out := make([]domain.BookDetail, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.BookDetail{BookID: id})
	}
	return out
}
