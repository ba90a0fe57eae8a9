package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelfapp/bookshelf-server/internal/domain"
)

func TestBroker_PublishReachesSubscriber(t *testing.T) {
	b := NewBroker(nil)
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	book := &domain.Book{ID: "book-1", Title: "Dawn"}
	b.Publish(book)

	select {
	case got := <-ch:
		assert.Equal(t, book, got)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroker_LateSubscriberMissesEarlierEvents(t *testing.T) {
	b := NewBroker(nil)
	defer b.Shutdown()

	b.Publish(&domain.Book{ID: "book-early"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	select {
	case got := <-ch:
		t.Fatalf("expected no event, got %v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker(nil)
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := b.Subscribe(ctx)
	ch2 := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(&domain.Book{ID: "book-1"})

	for _, ch := range []<-chan *domain.Book{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, "book-1", got.ID)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_ContextCancelUnsubscribes(t *testing.T) {
	b := NewBroker(nil)
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	require.Equal(t, 1, b.SubscriberCount())

	cancel()

	// The channel closes once the unsubscribe goroutine runs.
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroker_DropsWhenQueueFull(t *testing.T) {
	b := NewBroker(nil)
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	// Overfill the queue without draining; publish must not block.
	for i := 0; i < subscriberBuffer+5; i++ {
		b.Publish(&domain.Book{ID: "book-n"})
	}

	// The queue holds exactly its buffer; the rest were dropped.
	received := 0
	for {
		select {
		case <-ch:
			received++
		default:
			assert.Equal(t, subscriberBuffer, received)
			return
		}
	}
}

func TestBroker_SubscribeAfterShutdown(t *testing.T) {
	b := NewBroker(nil)
	b.Shutdown()

	ch := b.Subscribe(context.Background())
	_, ok := <-ch
	assert.False(t, ok)
}
