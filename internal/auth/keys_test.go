package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateKey_GeneratesAndPersists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "bookshelf-keys-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	key, err := LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	assert.Len(t, key, keyBytesSize)

	// A second load returns the same key.
	key2, err := LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, key, key2)

	_, err = os.Stat(filepath.Join(tmpDir, "auth.key"))
	require.NoError(t, err)
}

func TestLoadOrGenerateKey_RejectsCorruptKeyFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "bookshelf-keys-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "auth.key"), []byte("not hex"), 0o600))

	_, err = LoadOrGenerateKey(tmpDir)
	require.Error(t, err)
}
