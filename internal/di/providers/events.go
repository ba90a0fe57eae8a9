package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookshelfapp/bookshelf-server/internal/events"
	"github.com/bookshelfapp/bookshelf-server/internal/logger"
)

// BrokerHandle wraps the event broker for lifecycle management.
type BrokerHandle struct {
	*events.Broker
}

// Shutdown implements do.ShutdownerWithError.
func (h *BrokerHandle) Shutdown() error {
	h.Broker.Shutdown()
	return nil
}

// ProvideBroker provides the in-memory event broker.
func ProvideBroker(i do.Injector) (*BrokerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return &BrokerHandle{Broker: events.NewBroker(log.Logger)}, nil
}
