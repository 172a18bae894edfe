package domain

// UserRating is one (user, book, rating) observation supplied by the
// caller. The core never persists or mutates these.
type UserRating struct {
	UserID     uint   `json:"user_id"`
	BookID     uint64 `json:"book_id"`
	BookRating int    `json:"book_rating"`
}

// RatedBookIDs extracts the book ids from a ratings collection.
func RatedBookIDs(ratings []UserRating) []uint64 {
	ids := make([]uint64, 0, len(ratings))
	for _, r := range ratings {
		ids = append(ids, r.BookID)
	}
	return ids
}
