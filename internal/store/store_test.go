package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// setupStoreTest creates a store backed by a temporary database.
func setupStoreTest(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "bookshelf-store-test-*")
	require.NoError(t, err)

	s, err := New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return s
}

func TestStore_CreateAndGetAuthor(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	author := &domain.Author{ID: "author-1", Name: "Ursula K. Le Guin", CreatedAt: time.Now()}
	require.NoError(t, s.CreateAuthor(ctx, author))

	byID, err := s.GetAuthor(ctx, "author-1")
	require.NoError(t, err)
	assert.Equal(t, "Ursula K. Le Guin", byID.Name)

	byName, err := s.GetAuthorByName(ctx, "Ursula K. Le Guin")
	require.NoError(t, err)
	assert.Equal(t, "author-1", byName.ID)
}

func TestStore_CreateAuthor_DuplicateName(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAuthor(ctx, &domain.Author{ID: "author-1", Name: "Octavia Butler"}))

	err := s.CreateAuthor(ctx, &domain.Author{ID: "author-2", Name: "Octavia Butler"})
	require.ErrorIs(t, err, ErrAuthorExists)

	count, err := s.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_GetAuthorByName_NotFound(t *testing.T) {
	s := setupStoreTest(t)

	_, err := s.GetAuthorByName(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestStore_UpdateAuthor(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAuthor(ctx, &domain.Author{ID: "author-1", Name: "Ted Chiang"}))

	born := 1967
	author, err := s.GetAuthor(ctx, "author-1")
	require.NoError(t, err)
	author.Born = &born
	require.NoError(t, s.UpdateAuthor(ctx, author))

	updated, err := s.GetAuthorByName(ctx, "Ted Chiang")
	require.NoError(t, err)
	require.NotNil(t, updated.Born)
	assert.Equal(t, 1967, *updated.Born)
}

func TestStore_BooksAndCounts(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAuthor(ctx, &domain.Author{ID: "author-1", Name: "N.K. Jemisin"}))
	require.NoError(t, s.CreateAuthor(ctx, &domain.Author{ID: "author-2", Name: "Ann Leckie"}))

	books := []*domain.Book{
		{ID: "book-1", Title: "The Fifth Season", AuthorID: "author-1", Genres: []string{"fantasy"}},
		{ID: "book-2", Title: "The Obelisk Gate", AuthorID: "author-1", Genres: []string{"fantasy"}},
		{ID: "book-3", Title: "Ancillary Justice", AuthorID: "author-2", Genres: []string{"sci-fi"}},
	}
	for _, b := range books {
		require.NoError(t, s.CreateBook(ctx, b))
	}

	total, err := s.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	byAuthor, err := s.CountBooksByAuthor(ctx, "author-1")
	require.NoError(t, err)
	assert.Equal(t, 2, byAuthor)

	all, err := s.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_GetBook_NotFound(t *testing.T) {
	s := setupStoreTest(t)

	_, err := s.GetBook(context.Background(), "book-missing")
	require.ErrorIs(t, err, ErrBookNotFound)
}

func TestStore_CreateUser_UsernameIndex(t *testing.T) {
	s := setupStoreTest(t)
	ctx := context.Background()

	user := &domain.User{ID: "user-1", Username: "reader", FavoriteGenre: "sci-fi"}
	require.NoError(t, s.CreateUser(ctx, user))

	err := s.CreateUser(ctx, &domain.User{ID: "user-2", Username: "reader"})
	require.ErrorIs(t, err, ErrUsernameExists)

	found, err := s.GetUserByUsername(ctx, "reader")
	require.NoError(t, err)
	assert.Equal(t, "user-1", found.ID)
	assert.Equal(t, "sci-fi", found.FavoriteGenre)

	_, err = s.GetUserByUsername(ctx, "stranger")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestStore_CanceledContext(t *testing.T) {
	s := setupStoreTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListBooks(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
