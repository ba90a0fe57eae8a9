package auth

import (
	"encoding/hex"
	"fmt"

	"aidanwoods.dev/go-paseto"
	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

const (
	// PASETO v4 symmetric key size.
	keyBytesSize = 32
	keyHexSize   = 64
)

// Claims are the fields embedded in a session token.
// Tokens carry no expiry; a token stays valid until the key rotates.
type Claims struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// TokenService issues and verifies PASETO v4.local session tokens.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
}

// NewTokenService creates a token service from a hex-encoded 32-byte key.
func NewTokenService(keyHex string) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("token key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for token key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &TokenService{symmetricKey: key}, nil
}

// IssueToken creates a new token for the user, embedding username and ID.
func (s *TokenService) IssueToken(user *domain.User) (string, error) {
	token := paseto.NewToken()

	//nolint:errcheck // Token.Set only errors on unserializable types, which we control
	_ = token.Set("username", user.Username)
	//nolint:errcheck // Token.Set only errors on unserializable types, which we control
	_ = token.Set("id", user.ID)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyToken decrypts and parses a session token, returning its claims.
// Tokens have no exp claim, so parsing skips the expiry rule.
func (s *TokenService) VerifyToken(tokenString string) (*Claims, error) {
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims Claims
	if claims.Username, err = token.GetString("username"); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	if claims.ID, err = token.GetString("id"); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}

	return &claims, nil
}
