package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookshelfapp/bookshelf-server/internal/auth"
	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	domainerrors "github.com/bookshelfapp/bookshelf-server/internal/errors"
	"github.com/bookshelfapp/bookshelf-server/internal/id"
	"github.com/bookshelfapp/bookshelf-server/internal/store"
)

// AuthService handles user registration, login and token verification.
type AuthService struct {
	store  *store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store *store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// CreateUserRequest contains new account data.
type CreateUserRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=64"`
	Password      string `json:"password" validate:"required"`
	FavoriteGenre string `json:"favoriteGenre" validate:"required"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUser hashes the password and persists a new user account.
// Validation failures surface as user-input errors carrying the original
// arguments; the password is never echoed back.
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	args := map[string]any{
		"username":      req.Username,
		"favoriteGenre": req.FavoriteGenre,
	}

	if err := validate.Struct(req); err != nil {
		if msg := validationMessage(err); msg != "" {
			return nil, domainerrors.BadUserInputWithArgs("creating the user failed: "+msg, args)
		}
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.New("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:            userID,
		Username:      req.Username,
		PasswordHash:  passwordHash,
		FavoriteGenre: req.FavoriteGenre,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			return nil, domainerrors.BadUserInputWithArgs("creating the user failed: username already taken", args)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	}
	return user, nil
}

// Login verifies credentials and issues a signed session token.
// Unknown usernames report "wrong credentials" as a user-input error;
// a failed password check is a plain error with no argument context.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", domainerrors.BadUserInputWithArgs("wrong credentials", map[string]any{
				"username": req.Username,
			})
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return "", errors.New("wrong credentials")
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	}
	return token, nil
}

// VerifyToken resolves a bearer token to its user. Used once per request
// by the context middleware.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve token user: %w", err)
	}
	return user, nil
}
