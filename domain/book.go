package domain

import "strings"

// Book is one row of the catalog. RawIndex is the positional key the
// precomputed similarity and embedding artifacts are indexed by; it is
// distinct from the public BookID.
type Book struct {
	BookID        uint64  `json:"book_id"`
	RawIndex      int     `json:"r_index"`
	Title         string  `json:"original_title"`
	Authors       string  `json:"authors"`
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int     `json:"ratings_count"`
	Genre         string  `json:"genre"`
	ImageURL      string  `json:"image_url"`
}

// Genres splits the comma-separated genre field into its tokens.
func (b Book) Genres() []string {
	if b.Genre == "" {
		return nil
	}
	parts := strings.Split(b.Genre, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BookDetail is the projection returned by the popularity-facing calls.
type BookDetail struct {
	BookID        uint64  `json:"book_id"`
	Title         string  `json:"original_title"`
	Authors       string  `json:"authors"`
	AverageRating float64 `json:"average_rating"`
	ImageURL      string  `json:"image_url"`
}

// Detail projects a Book down to the fields exposed to callers.
func (b Book) Detail() BookDetail {
	return BookDetail{
		BookID:        b.BookID,
		Title:         b.Title,
		Authors:       b.Authors,
		AverageRating: b.AverageRating,
		ImageURL:      b.ImageURL,
	}
}
