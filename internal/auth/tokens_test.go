package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestTokenService_Roundtrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex)
	require.NoError(t, err)

	user := &domain.User{ID: "user-abc123", Username: "reader"}

	token, err := svc.IssueToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "user-abc123", claims.ID)
}

func TestTokenService_TamperedToken(t *testing.T) {
	svc, err := NewTokenService(testKeyHex)
	require.NoError(t, err)

	token, err := svc.IssueToken(&domain.User{ID: "user-1", Username: "reader"})
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.VerifyToken(tampered)
	require.Error(t, err)
}

func TestTokenService_WrongKey(t *testing.T) {
	svc1, err := NewTokenService(testKeyHex)
	require.NoError(t, err)
	svc2, err := NewTokenService(strings.Repeat("ff", 32))
	require.NoError(t, err)

	token, err := svc1.IssueToken(&domain.User{ID: "user-1", Username: "reader"})
	require.NoError(t, err)

	_, err = svc2.VerifyToken(token)
	require.Error(t, err)
}

func TestNewTokenService_InvalidKey(t *testing.T) {
	_, err := NewTokenService("too short")
	require.Error(t, err)

	_, err = NewTokenService(strings.Repeat("zz", 32))
	require.Error(t, err)
}
