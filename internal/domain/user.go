package domain

import "time"

// User represents an authenticated account. The password hash never leaves
// the server; API representations expose only username, favorite genre and ID.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"password_hash,omitempty"`
	FavoriteGenre string    `json:"favorite_genre"`
	CreatedAt     time.Time `json:"created_at"`
}
