package domain

import "time"

// Author represents a book author. Authors are created implicitly when a
// book names a previously unseen author; only the birth year is mutable.
//
// The number of books referencing an author is never stored here. It is
// always derived by counting at read time.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Born      *int      `json:"born,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
