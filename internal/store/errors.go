package store

import "errors"

// Sentinel errors returned by store operations.
var (
	// ErrAuthorNotFound is returned when an author cannot be found by ID or name.
	ErrAuthorNotFound = errors.New("author not found")
	// ErrAuthorExists is returned when creating an author whose name is already indexed.
	ErrAuthorExists = errors.New("author already exists")
	// ErrBookNotFound is returned when a book cannot be found by ID.
	ErrBookNotFound = errors.New("book not found")
	// ErrUserNotFound is returned when a user cannot be found by ID or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameExists is returned when creating a user whose username is already taken.
	ErrUsernameExists = errors.New("username already in use")
)
