package broadcaster

import (
	"context"
	"testing"

	"curbside-auctions/internal/ports/outbound"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBroadcaster_PublishReachesSubscribers(t *testing.T) {
	b := NewBroadcaster(LocalBroadcasterParams{Logger: zerolog.Nop()})
	ctx := context.Background()

	ch1 := make(chan outbound.Event, 1)
	ch2 := make(chan outbound.Event, 1)
	other := make(chan outbound.Event, 1)
	require.NoError(t, b.Subscribe(ctx, "test-item", "client-1", ch1))
	require.NoError(t, b.Subscribe(ctx, "test-item", "client-2", ch2))
	require.NoError(t, b.Subscribe(ctx, "other-item", "client-3", other))

	require.NoError(t, b.Publish(ctx, "test-item", outbound.Event{Type: outbound.EventTypeBidPlaced, Slug: "test-item"}))

	for _, ch := range []chan outbound.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, outbound.EventTypeBidPlaced, ev.Type)
			assert.NotZero(t, ev.Timestamp)
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}

	select {
	case <-other:
		t.Fatal("event leaked to a different auction's subscriber")
	default:
	}
}

func TestLocalBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster(LocalBroadcasterParams{Logger: zerolog.Nop()})
	ctx := context.Background()

	full := make(chan outbound.Event) // unbuffered with no reader
	require.NoError(t, b.Subscribe(ctx, "test-item", "client-1", full))

	// Publish must return immediately, dropping the event.
	require.NoError(t, b.Publish(ctx, "test-item", outbound.Event{Type: outbound.EventTypeCountdown, Slug: "test-item"}))
}

func TestLocalBroadcaster_Watched(t *testing.T) {
	b := NewBroadcaster(LocalBroadcasterParams{Logger: zerolog.Nop()})
	ctx := context.Background()

	assert.Empty(t, b.Watched(ctx))

	ch := make(chan outbound.Event, 1)
	require.NoError(t, b.Subscribe(ctx, "test-item", "client-1", ch))
	assert.Equal(t, []string{"test-item"}, b.Watched(ctx))

	require.NoError(t, b.Unsubscribe(ctx, "test-item", "client-1"))
	assert.Empty(t, b.Watched(ctx))
}
