// Package events implements an in-memory broadcast topic for catalog
// changes. Publish fans an event out to every subscriber registered at
// that moment; there is no history, so late subscribers miss earlier
// events. Delivery is best-effort: a subscriber whose queue is full is
// skipped rather than blocking the publisher.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/id"
)

// subscriberBuffer is the per-subscriber queue depth. A full queue means
// the client is not draining; dropped events are logged, not retried.
const subscriberBuffer = 16

// subscriber is one registered listener with its message queue.
type subscriber struct {
	id string
	ch chan *domain.Book
}

// Broker manages subscribers for the book-added topic.
type Broker struct {
	logger *slog.Logger

	mu     sync.RWMutex
	subs   map[string]*subscriber
	closed bool
}

// NewBroker creates a new broker.
func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		logger: logger,
		subs:   make(map[string]*subscriber),
	}
}

// Subscribe registers a listener and returns its event channel. The
// subscription lives until ctx is done or the broker shuts down; the
// channel is closed on unsubscribe.
func (b *Broker) Subscribe(ctx context.Context) <-chan *domain.Book {
	sub := &subscriber{
		id: id.MustNew("sub"),
		ch: make(chan *domain.Book, subscriberBuffer),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}
	b.subs[sub.id] = sub
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Debug("subscriber registered", "subscriber_id", sub.id)
	}

	go func() {
		<-ctx.Done()
		b.unsubscribe(sub.id)
	}()

	return sub.ch
}

// unsubscribe removes a listener and closes its channel.
func (b *Broker) unsubscribe(subID string) {
	b.mu.Lock()
	sub, ok := b.subs[subID]
	if ok {
		delete(b.subs, subID)
	}
	b.mu.Unlock()

	if ok {
		close(sub.ch)
		if b.logger != nil {
			b.logger.Debug("subscriber removed", "subscriber_id", subID)
		}
	}
}

// Publish delivers a book to all current subscribers.
func (b *Broker) Publish(book *domain.Book) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	var delivered, dropped int
	for _, sub := range b.subs {
		select {
		case sub.ch <- book:
			delivered++
		default:
			dropped++
		}
	}

	if b.logger != nil {
		b.logger.Debug("event published",
			"book_id", book.ID,
			"delivered", delivered,
			"dropped", dropped,
		)
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Shutdown closes all subscriber channels and rejects new subscriptions.
func (b *Broker) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for subID, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, subID)
	}

	if b.logger != nil {
		b.logger.Info("event broker shut down")
	}
}
