package ws

import (
	"time"

	"curbside-auctions/internal/ports/outbound"
)

// ServerMessage is pushed to clients watching an auction.
type ServerMessage struct {
	Type      outbound.EventType     `json:"type"`
	Slug      string                 `json:"slug"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     *string                `json:"error,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// NewServerMessage converts a broadcast event to the wire shape.
func NewServerMessage(event outbound.Event) *ServerMessage {
	return &ServerMessage{
		Type:      event.Type,
		Slug:      event.Slug,
		Data:      event.Data,
		Timestamp: event.Timestamp,
	}
}

// NewErrorMessage builds an error frame for a client.
func NewErrorMessage(msg string) *ServerMessage {
	return &ServerMessage{
		Type:      "error",
		Error:     &msg,
		Timestamp: time.Now().Unix(),
	}
}
