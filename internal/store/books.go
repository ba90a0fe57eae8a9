package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

// CreateBook persists a new book document.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(bookPrefix+book.ID), book)
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var book domain.Book
	err := s.get([]byte(bookPrefix+id), &book)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &book, nil
}

// ListBooks returns all books in key order.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return listPrefix[domain.Book](s, bookPrefix)
}

// CountBooks returns the total number of books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.countPrefix(bookPrefix)
}

// CountBooksByAuthor counts books referencing the given author.
// Full collection scan; the catalog is small enough that an index
// would not pay for its maintenance.
func (s *Store) CountBooksByAuthor(ctx context.Context, authorID string) (int, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, b := range books {
		if b.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}
