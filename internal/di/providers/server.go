package providers

import (
	"context"
	"errors"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/samber/do/v2"

	"github.com/bookshelfapp/bookshelf-server/internal/api"
	"github.com/bookshelfapp/bookshelf-server/internal/config"
	"github.com/bookshelfapp/bookshelf-server/internal/graph"
	"github.com/bookshelfapp/bookshelf-server/internal/logger"
	"github.com/bookshelfapp/bookshelf-server/internal/service"
)

// ProvideSchema parses the GraphQL schema against the root resolver.
func ProvideSchema(i do.Injector) (*graphql.Schema, error) {
	catalog := do.MustInvoke[*service.CatalogService](i)
	authService := do.MustInvoke[*service.AuthService](i)
	brokerHandle := do.MustInvoke[*BrokerHandle](i)

	resolver := graph.NewResolver(catalog, authService, brokerHandle.Broker)
	return graph.NewSchema(resolver)
}

// HTTPServerHandle wraps http.Server for lifecycle management.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.ShutdownerWithError.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server, started in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	schema := do.MustInvoke[*graphql.Schema](i)
	authService := do.MustInvoke[*service.AuthService](i)

	handler := api.NewServer(schema, authService, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
