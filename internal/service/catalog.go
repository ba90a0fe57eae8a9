package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	domainerrors "github.com/bookshelfapp/bookshelf-server/internal/errors"
	"github.com/bookshelfapp/bookshelf-server/internal/events"
	"github.com/bookshelfapp/bookshelf-server/internal/id"
	"github.com/bookshelfapp/bookshelf-server/internal/store"
)

// CatalogService orchestrates book and author operations.
type CatalogService struct {
	store  *store.Store
	broker *events.Broker
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, broker *events.Broker, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		broker: broker,
		logger: logger,
	}
}

// AddBookRequest contains new book data. The author is referenced by name
// and created on demand when unseen.
type AddBookRequest struct {
	Title     string   `json:"title" validate:"required,min=2"`
	Author    string   `json:"author" validate:"required,min=2"`
	Published *int     `json:"published"`
	Genres    []string `json:"genres"`
}

// EditAuthorRequest contains the author update data.
type EditAuthorRequest struct {
	Name string `json:"name" validate:"required"`
	Born int    `json:"born"`
}

// BookCount returns the total number of books.
func (s *CatalogService) BookCount(ctx context.Context) (int, error) {
	return s.store.CountBooks(ctx)
}

// AuthorCount returns the total number of authors.
func (s *CatalogService) AuthorCount(ctx context.Context) (int, error) {
	return s.store.CountAuthors(ctx)
}

// AllAuthors returns all authors, unfiltered.
func (s *CatalogService) AllAuthors(ctx context.Context) ([]*domain.Author, error) {
	return s.store.ListAuthors(ctx)
}

// AllBooks loads the full book collection and filters it in memory.
// With no filters every book is returned; an author filter keeps books
// whose author name matches; a genre filter keeps books carrying the
// genre; both together yield the intersection. Order is the store's
// natural retrieval order.
func (s *CatalogService) AllBooks(ctx context.Context, author, genre *string) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	if author == nil && genre == nil {
		return books, nil
	}

	// Join author names for the author filter.
	var authorNames map[string]string
	if author != nil {
		authors, err := s.store.ListAuthors(ctx)
		if err != nil {
			return nil, fmt.Errorf("list authors: %w", err)
		}
		authorNames = make(map[string]string, len(authors))
		for _, a := range authors {
			authorNames[a.ID] = a.Name
		}
	}

	filtered := make([]*domain.Book, 0, len(books))
	for _, b := range books {
		if author != nil && authorNames[b.AuthorID] != *author {
			continue
		}
		if genre != nil && !b.HasGenre(*genre) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered, nil
}

// AddBook creates a book, creating and saving its author first when the
// name is unseen. Requires an authenticated user; the author lookup runs
// before the authentication check. On success the new book is published
// to the book-added topic.
func (s *CatalogService) AddBook(ctx context.Context, current *domain.User, req AddBookRequest) (*domain.Book, error) {
	author, err := s.store.GetAuthorByName(ctx, req.Author)
	if err != nil && !errors.Is(err, store.ErrAuthorNotFound) {
		return nil, fmt.Errorf("lookup author: %w", err)
	}

	if current == nil {
		return nil, domainerrors.Unauthenticated("not authenticated")
	}

	args := map[string]any{
		"title":  req.Title,
		"author": req.Author,
	}

	if err := validate.Struct(req); err != nil {
		if msg := validationMessage(err); msg != "" {
			return nil, domainerrors.BadUserInputWithArgs("saving book failed: "+msg, args)
		}
		return nil, err
	}

	if author == nil {
		authorID, err := id.New("author")
		if err != nil {
			return nil, fmt.Errorf("generate author ID: %w", err)
		}
		author = &domain.Author{
			ID:        authorID,
			Name:      req.Author,
			CreatedAt: time.Now(),
		}
		if err := s.store.CreateAuthor(ctx, author); err != nil {
			if errors.Is(err, store.ErrAuthorExists) {
				return nil, domainerrors.BadUserInputWithArgs("saving author failed: name already taken", args)
			}
			return nil, fmt.Errorf("create author: %w", err)
		}
		if s.logger != nil {
			s.logger.Info("author created", "author_id", author.ID, "name", author.Name)
		}
	}

	bookID, err := id.New("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	genres := req.Genres
	if genres == nil {
		genres = []string{}
	}

	book := &domain.Book{
		ID:        bookID,
		Title:     req.Title,
		Published: req.Published,
		AuthorID:  author.ID,
		Genres:    genres,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book created", "book_id", book.ID, "title", book.Title, "author", author.Name)
	}

	s.broker.Publish(book)
	return book, nil
}

// EditAuthor sets an author's birth year. Requires an authenticated user;
// the author fetch runs before the authentication check. A missing author
// reports not-found.
func (s *CatalogService) EditAuthor(ctx context.Context, current *domain.User, req EditAuthorRequest) (*domain.Author, error) {
	author, err := s.store.GetAuthorByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrAuthorNotFound) {
			return nil, domainerrors.NotFoundf("author %q not found", req.Name)
		}
		return nil, fmt.Errorf("lookup author: %w", err)
	}

	if current == nil {
		return nil, domainerrors.Unauthenticated("not authenticated")
	}

	if err := validate.Struct(req); err != nil {
		if msg := validationMessage(err); msg != "" {
			return nil, domainerrors.BadUserInputWithArgs("editing author failed: "+msg, map[string]any{
				"name": req.Name,
				"born": req.Born,
			})
		}
		return nil, err
	}

	born := req.Born
	author.Born = &born
	if err := s.store.UpdateAuthor(ctx, author); err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("author updated", "author_id", author.ID, "born", born)
	}
	return author, nil
}

// AuthorByID returns the author a book references.
func (s *CatalogService) AuthorByID(ctx context.Context, authorID string) (*domain.Author, error) {
	return s.store.GetAuthor(ctx, authorID)
}

// AuthorByName re-queries an author by name. Used by the bookCount field
// resolver, which looks the author up again before counting.
func (s *CatalogService) AuthorByName(ctx context.Context, name string) (*domain.Author, error) {
	return s.store.GetAuthorByName(ctx, name)
}

// BooksByAuthor counts the books referencing an author.
func (s *CatalogService) BooksByAuthor(ctx context.Context, authorID string) (int, error) {
	return s.store.CountBooksByAuthor(ctx, authorID)
}
