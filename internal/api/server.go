// Package api provides the HTTP transport for the GraphQL endpoint.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"

	"github.com/bookshelfapp/bookshelf-server/internal/service"
)

// Server routes HTTP traffic to the GraphQL schema. Queries and mutations
// arrive as POSTs on /graphql; the same path upgrades to a websocket for
// subscription traffic.
type Server struct {
	router *chi.Mux
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(schema *graphql.Schema, authService *service.AuthService, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
	}

	s.setupMiddleware()
	s.setupRoutes(schema, authService)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Sec-WebSocket-Protocol"},
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(schema *graphql.Schema, authService *service.AuthService) {
	s.router.Get("/health", s.handleHealthCheck)

	// Websocket upgrades carry subscriptions; everything else falls
	// through to the relay handler.
	graphqlHandler := graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema})

	s.router.With(bearerAuth(authService, s.logger)).Handle("/graphql", graphqlHandler)
}

// handleHealthCheck reports liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
