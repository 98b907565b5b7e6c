package outbound

import (
	"context"

	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/domain/bid"
	"curbside-auctions/internal/domain/settings"
)

// AuctionRepository defines the interface for auction data operations.
type AuctionRepository interface {
	// List retrieves all auctions in stored order.
	List(ctx context.Context) ([]auction.Auction, error)

	// GetBySlug retrieves an auction by slug.
	GetBySlug(ctx context.Context, slug string) (*auction.Auction, error)

	// Create inserts a new auction, enforcing slug uniqueness.
	Create(ctx context.Context, a auction.Auction) error

	// Update replaces the auction stored under oldSlug. When the slug
	// changed, the bid history is migrated to the new key.
	Update(ctx context.Context, oldSlug string, a auction.Auction) error

	// Delete removes an auction and cascade-deletes its bid history.
	Delete(ctx context.Context, slug string) error
}

// BidRepository defines the interface for bid history operations.
type BidRepository interface {
	// ListBySlug retrieves the append-only bid history for an auction.
	ListBySlug(ctx context.Context, slug string) ([]bid.Bid, error)

	// Append adds a bid to the end of an auction's history.
	Append(ctx context.Context, slug string, b bid.Bid) error

	// Move copies the history from oldSlug to newSlug and removes the old key.
	Move(ctx context.Context, oldSlug, newSlug string) error

	// DeleteBySlug removes an auction's entire bid history.
	DeleteBySlug(ctx context.Context, slug string) error
}

// SettingsRepository defines the interface for the settings singleton.
type SettingsRepository interface {
	// Load retrieves the stored settings, or nil when none exist yet.
	Load(ctx context.Context) (*settings.Settings, error)

	// Save persists the settings singleton.
	Save(ctx context.Context, s settings.Settings) error
}
