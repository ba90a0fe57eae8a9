package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

// CreateUser persists a new user account and indexes it by username.
// Returns ErrUsernameExists if the username is already taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(userPrefix + user.ID)
	usernameKey := []byte(userByUsernamePrefix + user.Username)

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(usernameKey)
		if err == nil {
			return ErrUsernameExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check username index: %w", err)
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(usernameKey, []byte(user.ID))
	})
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user domain.User
	err := s.get([]byte(userPrefix+id), &user)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user through the username index.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user domain.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userByUsernamePrefix + username))
		if err != nil {
			return err
		}
		return item.Value(func(id []byte) error {
			userItem, err := txn.Get([]byte(userPrefix + string(id)))
			if err != nil {
				return err
			}
			return userItem.Value(func(val []byte) error {
				return json.Unmarshal(val, &user)
			})
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}
