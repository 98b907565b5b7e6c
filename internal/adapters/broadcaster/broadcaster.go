package broadcaster

import (
	"context"
	"sync"
	"time"

	"curbside-auctions/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// LocalBroadcaster fans events out to subscribers within the process. One
// server process owns the store, so no external pub/sub layer is involved.
type LocalBroadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]map[string]chan outbound.Event // slug -> clientID -> channel
	logger      zerolog.Logger
}

type LocalBroadcasterParams struct {
	Logger zerolog.Logger
}

// NewBroadcaster creates a new in-process broadcaster.
func NewBroadcaster(params LocalBroadcasterParams) *LocalBroadcaster {
	return &LocalBroadcaster{
		subscribers: make(map[string]map[string]chan outbound.Event),
		logger:      params.Logger.With().Str("component", "broadcaster").Logger(),
	}
}

// Subscribe registers a client channel for events on an auction.
func (b *LocalBroadcaster) Subscribe(ctx context.Context, slug, clientID string, ch chan outbound.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subscribers[slug] == nil {
		b.subscribers[slug] = make(map[string]chan outbound.Event)
	}
	b.subscribers[slug][clientID] = ch

	b.logger.Debug().Str("slug", slug).Str("client_id", clientID).Msg("Client subscribed")
	return nil
}

// Unsubscribe removes a client's subscription to an auction.
func (b *LocalBroadcaster) Unsubscribe(ctx context.Context, slug, clientID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if clients, ok := b.subscribers[slug]; ok {
		delete(clients, clientID)
		if len(clients) == 0 {
			delete(b.subscribers, slug)
		}
	}

	b.logger.Debug().Str("slug", slug).Str("client_id", clientID).Msg("Client unsubscribed")
	return nil
}

// Publish delivers an event to every subscriber of the auction. Slow
// subscribers are skipped rather than blocking the publisher.
func (b *LocalBroadcaster) Publish(ctx context.Context, slug string, event outbound.Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for clientID, ch := range b.subscribers[slug] {
		select {
		case ch <- event:
		default:
			b.logger.Warn().Str("slug", slug).Str("client_id", clientID).Msg("Dropping event for slow subscriber")
		}
	}
	return nil
}

// Watched returns the slugs that currently have at least one subscriber.
func (b *LocalBroadcaster) Watched(ctx context.Context) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	slugs := make([]string, 0, len(b.subscribers))
	for slug := range b.subscribers {
		slugs = append(slugs, slug)
	}
	return slugs
}
