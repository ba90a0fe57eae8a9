package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bookshelfapp/bookshelf-server/internal/auth"
	"github.com/bookshelfapp/bookshelf-server/internal/service"
)

// bearerAuth resolves the Authorization header into the request's current
// user. A missing or non-Bearer header means the request proceeds
// anonymously; a present but unverifiable token fails the request at the
// transport level before any resolver runs.
func bearerAuth(authService *service.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.VerifyToken(r.Context(), header[len("Bearer "):])
			if err != nil {
				if logger != nil {
					logger.Warn("bearer token rejected", "error", err)
				}
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}
