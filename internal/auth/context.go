package auth

import (
	"context"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// currentUserKey is the context key for the authenticated user.
const currentUserKey ctxKey = "currentUser"

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// UserFromContext returns the authenticated user for this request, or nil
// when the request is anonymous.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(currentUserKey).(*domain.User)
	return user
}
