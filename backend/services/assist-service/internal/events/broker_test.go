package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"everse/backend/services/assist-service/internal/models"
)

func TestMemoryBrokerFanOut(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.Subscribe(ctx)
	require.NoError(t, err)
	second, err := b.Subscribe(ctx)
	require.NoError(t, err)

	evt := models.Event{Type: models.EventCreated, Request: models.EmergencyRequest{ID: "req-1"}}
	require.NoError(t, b.Publish(ctx, evt))

	assert.Equal(t, evt, <-first)
	assert.Equal(t, evt, <-second)
}

func TestMemoryBrokerDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := b.Subscribe(ctx)
	require.NoError(t, err)

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, b.Publish(ctx, models.Event{Type: models.EventUpdated}))
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestMemoryBrokerClosesOnCancel(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := b.Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription was not closed")
	}

	// publishing after unsubscribe must not panic
	require.NoError(t, b.Publish(context.Background(), models.Event{}))
}
