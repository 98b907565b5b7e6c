package inbound

import (
	"context"

	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/domain/bid"
	"curbside-auctions/internal/domain/settings"
)

// AuctionService defines the interface for listing management.
type AuctionService interface {
	// CreateAuction creates a new listing.
	CreateAuction(ctx context.Context, req SaveAuctionRequest) (*auction.Auction, error)

	// UpdateAuction replaces the listing stored under slug, migrating the
	// bid history when the slug changes.
	UpdateAuction(ctx context.Context, slug string, req SaveAuctionRequest) (*auction.Auction, error)

	// DeleteAuction removes a listing and its bid history.
	DeleteAuction(ctx context.Context, slug string) error

	// GetAuction retrieves a listing by slug.
	GetAuction(ctx context.Context, slug string) (*auction.Auction, error)

	// ListAuctions retrieves all listings sorted by start time.
	ListAuctions(ctx context.Context) ([]auction.Auction, error)
}

// BidService defines the interface for bid operations.
type BidService interface {
	// PlaceBid validates and appends a bid, applying anti-sniping extension.
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*BidResult, error)

	// BuyNow settles an auction at its buy-now price and closes it.
	BuyNow(ctx context.Context, req BuyNowRequest) (*BidResult, error)

	// GetBids retrieves the bid history for an auction.
	GetBids(ctx context.Context, slug string) ([]bid.Bid, error)

	// CurrentPrice returns the current price of an auction.
	CurrentPrice(ctx context.Context, slug string) (float64, error)
}

// SettingsService defines the interface for the settings singleton.
type SettingsService interface {
	// Load returns the settings, initializing defaults on first run.
	Load(ctx context.Context) (*settings.Settings, error)

	// Save applies an update; a blank password keeps the current hash.
	Save(ctx context.Context, req SaveSettingsRequest) (*settings.Settings, error)
}

// SaveAuctionRequest carries the fields of a listing. Reserve and buy-now
// prices are optional; everything else is mandatory.
type SaveAuctionRequest struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartsAt     string   `json:"starts_at"` // RFC3339
	DurationMins int      `json:"duration_mins"`
	StartingBid  float64  `json:"starting_bid"`
	MinIncrement float64  `json:"min_increment"`
	MaxIncrement float64  `json:"max_increment"`
	Currency     string   `json:"currency"`
	ReservePrice *float64 `json:"reserve_price,omitempty"`
	BuyNowPrice  *float64 `json:"buy_now_price,omitempty"`
}

// PlaceBidRequest carries a candidate bid.
type PlaceBidRequest struct {
	Slug   string  `json:"slug"`
	Bidder string  `json:"bidder"`
	Amount float64 `json:"amount"`
}

// BuyNowRequest carries a buy-now settlement.
type BuyNowRequest struct {
	Slug   string `json:"slug"`
	Bidder string `json:"bidder"`
}

// BidResult is returned after a successful bid for display refresh.
type BidResult struct {
	Bid          bid.Bid   `json:"bid"`
	CurrentPrice float64   `json:"current_price"`
	Bids         []bid.Bid `json:"bids"`
	Extended     bool      `json:"extended"`
}

// SaveSettingsRequest carries a settings update. NewPassword is hashed
// before storage and never persisted in plaintext.
type SaveSettingsRequest struct {
	AdminUser               string `json:"admin_user"`
	NewPassword             string `json:"new_password,omitempty"`
	Currency                string `json:"currency"`
	SnipingExtensionSeconds int    `json:"sniping_extension_seconds"`
	ExtensionAmountSeconds  int    `json:"extension_amount_seconds"`
	Timezone                string `json:"timezone"`
}
