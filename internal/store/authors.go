package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

// CreateAuthor persists a new author and indexes it by name.
// Returns ErrAuthorExists if the name is already taken.
func (s *Store) CreateAuthor(ctx context.Context, author *domain.Author) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(authorPrefix + author.ID)
	nameKey := []byte(authorByNamePrefix + author.Name)

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(nameKey)
		if err == nil {
			return ErrAuthorExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check author name index: %w", err)
		}

		data, err := json.Marshal(author)
		if err != nil {
			return fmt.Errorf("marshal author: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(nameKey, []byte(author.ID))
	})
}

// UpdateAuthor overwrites an existing author document. The name is
// immutable, so the name index needs no maintenance here.
func (s *Store) UpdateAuthor(ctx context.Context, author *domain.Author) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(authorPrefix+author.ID), author)
}

// GetAuthor retrieves an author by ID.
func (s *Store) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var author domain.Author
	err := s.get([]byte(authorPrefix+id), &author)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	return &author, nil
}

// GetAuthorByName retrieves an author through the name index.
func (s *Store) GetAuthorByName(ctx context.Context, name string) (*domain.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var author domain.Author
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(authorByNamePrefix + name))
		if err != nil {
			return err
		}
		return item.Value(func(id []byte) error {
			authorItem, err := txn.Get([]byte(authorPrefix + string(id)))
			if err != nil {
				return err
			}
			return authorItem.Value(func(val []byte) error {
				return json.Unmarshal(val, &author)
			})
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author by name: %w", err)
	}
	return &author, nil
}

// ListAuthors returns all authors in key order.
func (s *Store) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return listPrefix[domain.Author](s, authorPrefix)
}

// CountAuthors returns the total number of authors.
func (s *Store) CountAuthors(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.countPrefix(authorPrefix)
}
