package shared

import "errors"

// Domain-specific errors
var (
	// Auction errors
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrSlugTaken        = errors.New("slug already exists")
	ErrInvalidSlug      = errors.New("slug must be lowercase alphanumeric with hyphens")
	ErrInvalidDuration  = errors.New("duration must be greater than 0")
	ErrInvalidAmounts   = errors.New("starting bid and increments must be non-negative")
	ErrIncrementOrder   = errors.New("min increment cannot exceed max increment")
	ErrInvalidStartTime = errors.New("invalid start time format")

	// Bid errors
	ErrAuctionNotOpen       = errors.New("auction is not open for bidding")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrBidTooLow            = errors.New("bid must exceed current bid")
	ErrIncrementOutOfBounds = errors.New("bid increment out of bounds")
	ErrBuyNowUnavailable    = errors.New("buy now is not available for this auction")

	// Settings errors
	ErrSettingsNotFound = errors.New("settings not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
