// Package domain contains the core entities of the Bookshelf catalog.
package domain

import "time"

// Book represents a catalog entry. Books are immutable once created;
// there is no edit or delete operation.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Published *int      `json:"published,omitempty"`
	AuthorID  string    `json:"author_id"`
	Genres    []string  `json:"genres"`
	CreatedAt time.Time `json:"created_at"`
}

// HasGenre reports whether the book carries the given genre label.
// Genres are an ordered sequence and may contain duplicates.
func (b *Book) HasGenre(genre string) bool {
	for _, g := range b.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
