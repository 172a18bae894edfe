package popularity

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"bookRecSystem/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBooks struct {
	books []domain.Book
}

func (f *fakeBooks) All() []domain.Book {
	return f.books
}

func (f *fakeBooks) ByGenre(genre string) []domain.Book {
	genre = strings.ToLower(genre)
	var out []domain.Book
	for _, b := range f.books {
		if strings.Contains(b.Genre, genre) {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeBooks) Details(bookIDs []uint64) ([]domain.BookDetail, error) {
	out := make([]domain.BookDetail, 0, len(bookIDs))
	for _, id := range bookIDs {
		found := false
		for _, b := range f.books {
			if b.BookID == id {
				out = append(out, b.Detail())
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("book id %d: %w", id, domain.ErrNotFound)
		}
	}
	return out, nil
}

func newTestService(books []domain.Book, seed int64) (*Service, *fakeBooks) {
	src := &fakeBooks{books: books}
	return NewService(src, rand.New(rand.NewSource(seed))), src
}

func book(id uint64, genre string, avg float64, count int) domain.Book {
	return domain.Book{
		BookID:        id,
		Title:         fmt.Sprintf("Book %d", id),
		Genre:         genre,
		AverageRating: avg,
		RatingsCount:  count,
	}
}

func TestWeightedScore_ShrinkageMonotonicity(t *testing.T) {
	// equal average rating above the subset mean: more votes must pull
	// the weighted score closer to the raw average, i.e. above
	c, m := 3.0, 50.0
	high := weightedScore(4.5, 1000, c, m)
	low := weightedScore(4.5, 1, c, m)

	assert.Greater(t, high, low)
	assert.Less(t, high, 4.5)
	assert.Greater(t, low, c)
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	counts := []int{10, 20, 30, 40}

	assert.InDelta(t, 10.0, quantile(counts, 0.0), 1e-9)
	assert.InDelta(t, 40.0, quantile(counts, 1.0), 1e-9)
	assert.InDelta(t, 25.0, quantile(counts, 0.5), 1e-9)
	assert.InDelta(t, 38.5, quantile(counts, 0.95), 1e-9)
}

func TestRankByWeightedRating_OrdersByShrunkScore(t *testing.T) {
	books := []domain.Book{
		book(1, "fiction", 4.8, 5),    // high rating, nearly no votes
		book(2, "fiction", 4.5, 5000), // strong rating, many votes
		book(3, "fiction", 3.0, 5000),
		book(4, "fiction", 2.0, 100),
	}

	ranked := rankByWeightedRating(books, 0.85)

	assert.Equal(t, uint64(2), ranked[0].BookID,
		"heavily voted 4.5 must beat barely voted 4.8 under shrinkage")
	assert.Equal(t, uint64(3), ranked[len(ranked)-1].BookID,
		"many votes anchor the low average below the shrunk 2.0")
}

func TestGenreWise_SampleComesFromRankedHead(t *testing.T) {
	var books []domain.Book
	for i := 1; i <= 60; i++ {
		// ids ascending with average rating so the worst books rank last
		books = append(books, book(uint64(i), "fantasy", 3.0+float64(i)*0.02, 100))
	}
	svc, _ := newTestService(books, 3)

	got, err := svc.GenreWise(context.Background(), "fantasy", 16)
	require.NoError(t, err)
	require.Len(t, got, 16)

	// the head is the 48 best; the 12 worst (lowest counts, ids 1..12)
	// can never be sampled
	for _, d := range got {
		assert.Greater(t, d.BookID, uint64(12), "id %d is outside the ranked head", d.BookID)
	}
}

func TestGenreWise_SamplingRotates(t *testing.T) {
	var books []domain.Book
	for i := 1; i <= 48; i++ {
		books = append(books, book(uint64(i), "fantasy", 4.0, 100))
	}

	first := map[uint64]struct{}{}
	for seed := int64(0); seed < 10; seed++ {
		svc, _ := newTestService(books, seed)
		got, err := svc.GenreWise(context.Background(), "fantasy", 5)
		require.NoError(t, err)
		first[got[0].BookID] = struct{}{}
	}
	assert.Greater(t, len(first), 1, "sampling never varied across seeds")
}

func TestGenreWise_UnknownGenre(t *testing.T) {
	svc, _ := newTestService([]domain.Book{book(1, "fiction", 4.0, 10)}, 1)

	_, err := svc.GenreWise(context.Background(), "cookbooks", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenreWise_SubstringGenreMatch(t *testing.T) {
	books := []domain.Book{
		book(1, "fiction, classics", 4.0, 100),
		book(2, "nonfiction", 4.0, 100),
		book(3, "romance", 4.0, 100),
	}
	svc, _ := newTestService(books, 1)

	got, err := svc.GenreWise(context.Background(), "fiction", 10)
	require.NoError(t, err)

	// substring semantics: "nonfiction" qualifies for "fiction",
	// matching how the artifacts were produced
	ids := map[uint64]struct{}{}
	for _, d := range got {
		ids[d.BookID] = struct{}{}
	}
	assert.Contains(t, ids, uint64(1))
	assert.Contains(t, ids, uint64(2))
	assert.NotContains(t, ids, uint64(3))
}

func TestTopN_ReturnsWholeHeadShuffled(t *testing.T) {
	var books []domain.Book
	for i := 1; i <= 30; i++ {
		books = append(books, book(uint64(i), "fiction", 3.0+float64(i%3), i*50))
	}
	svc, _ := newTestService(books, 5)

	got, err := svc.TopN(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 10)

	seen := map[uint64]struct{}{}
	for _, d := range got {
		seen[d.BookID] = struct{}{}
	}
	assert.Len(t, seen, 10)
}

func TestTopN_LargerThanCatalog(t *testing.T) {
	books := []domain.Book{
		book(1, "fiction", 4.0, 10),
		book(2, "fiction", 3.0, 10),
	}
	svc, _ := newTestService(books, 1)

	got, err := svc.TopN(context.Background(), 400)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPopularAmongUsers_ThresholdAndTopUp(t *testing.T) {
	var books []domain.Book
	for i := 1; i <= 20; i++ {
		avg := 3.0 + float64(i)*0.05
		if i == 9 {
			// ranked dead last, so the top-up head can never re-serve it
			avg = 2.0
		}
		books = append(books, book(uint64(i), "fiction", avg, 100))
	}
	svc, _ := newTestService(books, 2)

	ratings := []domain.UserRating{
		{UserID: 1, BookID: 3, BookRating: 5},
		{UserID: 2, BookID: 7, BookRating: 4},
		{UserID: 3, BookID: 9, BookRating: 2}, // below threshold
		{UserID: 4, BookID: 3, BookRating: 5}, // duplicate book
	}

	got, err := svc.PopularAmongUsers(context.Background(), ratings, 6)
	require.NoError(t, err)
	require.Len(t, got, 6, "shortfall must be topped up from the global top list")

	ids := map[uint64]struct{}{}
	for _, d := range got {
		ids[d.BookID] = struct{}{}
	}
	assert.Contains(t, ids, uint64(3))
	assert.Contains(t, ids, uint64(7))
	assert.NotContains(t, ids, uint64(9))
	assert.Len(t, ids, 6, "no duplicates")
}

func TestPopularAmongUsers_NoRatings(t *testing.T) {
	var books []domain.Book
	for i := 1; i <= 10; i++ {
		books = append(books, book(uint64(i), "fiction", 4.0, 100))
	}
	svc, _ := newTestService(books, 2)

	got, err := svc.PopularAmongUsers(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
