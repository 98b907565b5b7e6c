package outbound

import "context"

// EventType identifies a live-feed event.
type EventType string

const (
	EventTypeBidPlaced    EventType = "bid_placed"
	EventTypeAuctionEnded EventType = "auction_ended"
	EventTypeCountdown    EventType = "countdown"
)

// Event is a message fanned out to clients watching an auction.
type Event struct {
	Type      EventType              `json:"type"`
	Slug      string                 `json:"slug"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Broadcaster fans out auction events to subscribed clients.
type Broadcaster interface {
	// Subscribe registers a client channel for events on an auction.
	Subscribe(ctx context.Context, slug, clientID string, ch chan Event) error

	// Unsubscribe removes a client's subscription to an auction.
	Unsubscribe(ctx context.Context, slug, clientID string) error

	// Publish delivers an event to every subscriber of the auction.
	Publish(ctx context.Context, slug string, event Event) error

	// Watched returns the slugs that currently have at least one subscriber.
	Watched(ctx context.Context) []string
}
