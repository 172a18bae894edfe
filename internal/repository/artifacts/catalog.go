package artifacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bookRecSystem/domain"
)

// Catalog is the immutable in-memory book table. It is loaded once at
// startup and only ever read afterwards, so it is safe for concurrent
// use without locks.
type Catalog struct {
	books      []domain.Book
	byID       map[uint64]*domain.Book
	byRawIndex map[int]*domain.Book
}

var catalogColumns = []string{
	"book_id", "r_index", "original_title", "authors",
	"average_rating", "ratings_count", "genre", "image_url",
}

// LoadCatalog reads the catalog CSV. Schema violations (missing column,
// non-numeric rating, duplicate id or raw index) are fatal.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	return ReadCatalog(f)
}

// ReadCatalog parses catalog rows from r. Split out of LoadCatalog so
// tests can feed CSV from memory.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range catalogColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("catalog csv missing column %q", name)
		}
	}

	c := &Catalog{}
	seenID := make(map[uint64]struct{})
	seenRaw := make(map[int]struct{})

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		bookID, err := strconv.ParseUint(record[col["book_id"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad book_id: %w", line, err)
		}
		rawIndex, err := strconv.Atoi(record[col["r_index"]])
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad r_index: %w", line, err)
		}
		avgRating, err := strconv.ParseFloat(record[col["average_rating"]], 64)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad average_rating: %w", line, err)
		}
		ratingsCount, err := strconv.Atoi(record[col["ratings_count"]])
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: bad ratings_count: %w", line, err)
		}

		book := domain.Book{
			BookID:        bookID,
			RawIndex:      rawIndex,
			Title:         record[col["original_title"]],
			Authors:       record[col["authors"]],
			AverageRating: avgRating,
			RatingsCount:  ratingsCount,
			Genre:         strings.ToLower(record[col["genre"]]),
			ImageURL:      record[col["image_url"]],
		}

		if _, exists := seenID[bookID]; exists {
			return nil, fmt.Errorf("catalog line %d: duplicate book_id %d", line, bookID)
		}
		if _, exists := seenRaw[rawIndex]; exists {
			return nil, fmt.Errorf("catalog line %d: duplicate r_index %d", line, rawIndex)
		}
		seenID[bookID] = struct{}{}
		seenRaw[rawIndex] = struct{}{}

		c.books = append(c.books, book)
	}

	if len(c.books) == 0 {
		return nil, fmt.Errorf("catalog csv has no rows")
	}

	c.byID = make(map[uint64]*domain.Book, len(c.books))
	c.byRawIndex = make(map[int]*domain.Book, len(c.books))
	for i := range c.books {
		b := &c.books[i]
		c.byID[b.BookID] = b
		c.byRawIndex[b.RawIndex] = b
	}

	return c, nil
}

// Size returns the number of books in the catalog.
func (c *Catalog) Size() int {
	return len(c.books)
}

// Contains reports whether a book id exists in the catalog.
func (c *Catalog) Contains(bookID uint64) bool {
	_, ok := c.byID[bookID]
	return ok
}

// BookByID returns the catalog entry for a book id.
func (c *Catalog) BookByID(bookID uint64) (domain.Book, error) {
	b, ok := c.byID[bookID]
	if !ok {
		return domain.Book{}, fmt.Errorf("book id %d: %w", bookID, domain.ErrNotFound)
	}
	return *b, nil
}

// TitleOf returns the title for a book id.
func (c *Catalog) TitleOf(bookID uint64) (string, error) {
	b, ok := c.byID[bookID]
	if !ok {
		return "", fmt.Errorf("book id %d: %w", bookID, domain.ErrNotFound)
	}
	return b.Title, nil
}

// RawIndexOf returns the artifact raw index for a book id.
func (c *Catalog) RawIndexOf(bookID uint64) (int, error) {
	b, ok := c.byID[bookID]
	if !ok {
		return 0, fmt.Errorf("book id %d: %w", bookID, domain.ErrNotFound)
	}
	return b.RawIndex, nil
}

// BookIDs maps raw indices back to book ids, preserving input order.
// Any raw index without a catalog entry is a NotFound.
func (c *Catalog) BookIDs(rawIndices []int) ([]uint64, error) {
	ids := make([]uint64, 0, len(rawIndices))
	for _, idx := range rawIndices {
		b, ok := c.byRawIndex[idx]
		if !ok {
			return nil, fmt.Errorf("raw index %d: %w", idx, domain.ErrNotFound)
		}
		ids = append(ids, b.BookID)
	}
	return ids, nil
}

// GenresOf returns the genre tokens of a book id.
func (c *Catalog) GenresOf(bookID uint64) ([]string, error) {
	b, ok := c.byID[bookID]
	if !ok {
		return nil, fmt.Errorf("book id %d: %w", bookID, domain.ErrNotFound)
	}
	return b.Genres(), nil
}

// All returns every book in catalog order. Callers must not mutate the
// returned slice.
func (c *Catalog) All() []domain.Book {
	return c.books
}

// ByGenre returns the books whose genre field contains the given genre,
// in catalog order. Matching is a substring test against the delimited
// genre string, same as the artifact-producing pipeline.
func (c *Catalog) ByGenre(genre string) []domain.Book {
	genre = strings.ToLower(genre)
	var out []domain.Book
	for _, b := range c.books {
		if strings.Contains(b.Genre, genre) {
			out = append(out, b)
		}
	}
	return out
}

// Details projects book ids onto the caller-facing detail record.
// Unknown ids are a NotFound.
func (c *Catalog) Details(bookIDs []uint64) ([]domain.BookDetail, error) {
	out := make([]domain.BookDetail, 0, len(bookIDs))
	for _, id := range bookIDs {
		b, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("book id %d: %w", id, domain.ErrNotFound)
		}
		out = append(out, b.Detail())
	}
	return out, nil
}
