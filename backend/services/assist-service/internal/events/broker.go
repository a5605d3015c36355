package events

import (
	"context"
	"sync"

	"everse/backend/services/assist-service/internal/models"
)

const subscriberBuffer = 16

// Broker fans emergency events out to subscribers.
type Broker interface {
	Publish(ctx context.Context, evt models.Event) error
	// Subscribe returns a channel that is closed once ctx is done.
	Subscribe(ctx context.Context) (<-chan models.Event, error)
}

// MemoryBroker delivers events inside one process. Slow subscribers drop events.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[chan models.Event]struct{}
}

// NewMemoryBroker returns in-process broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: map[chan models.Event]struct{}{}}
}

// Subscribe registers a subscriber until ctx is done.
func (b *MemoryBroker) Subscribe(ctx context.Context) (<-chan models.Event, error) {
	ch := make(chan models.Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch, nil
}

// Publish never blocks.
func (b *MemoryBroker) Publish(_ context.Context, evt models.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- evt:
		default:
		}
	}
	return nil
}
