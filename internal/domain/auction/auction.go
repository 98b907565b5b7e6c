package auction

import (
	"time"

	"curbside-auctions/internal/domain/shared"
)

// Status represents the lifecycle state of an auction, derived from the
// wall clock rather than stored.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusEnded    Status = "ended"
)

// Auction represents a single listing. The slug acts as the primary key.
type Auction struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	StartsAt     time.Time `json:"starts_at"`
	DurationMins int       `json:"duration_mins"`
	StartingBid  float64   `json:"starting_bid"`
	MinIncrement float64   `json:"min_increment"`
	MaxIncrement float64   `json:"max_increment"`
	Currency     string    `json:"currency"`
	ReservePrice *float64  `json:"reserve_price,omitempty"`
	BuyNowPrice  *float64  `json:"buy_now_price,omitempty"`
}

// TimeRemaining holds countdown values, each clamped to zero once past.
type TimeRemaining struct {
	UntilStart time.Duration `json:"until_start"`
	UntilEnd   time.Duration `json:"until_end"`
}

// ClosesAt returns the scheduled close instant. DurationMins is mutable:
// anti-sniping extension and buy-now settlement rewrite it.
func (a *Auction) ClosesAt() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMins) * time.Minute)
}

// Status derives the auction state at the given instant. Both the start
// and close instants are themselves live.
func (a *Auction) Status(now time.Time) Status {
	if now.Before(a.StartsAt) {
		return StatusUpcoming
	}
	if now.After(a.ClosesAt()) {
		return StatusEnded
	}
	return StatusLive
}

// IsLive reports whether bids can be placed at the given instant.
func (a *Auction) IsLive(now time.Time) bool {
	return a.Status(now) == StatusLive
}

// TimeRemaining computes countdown values at the given instant.
func (a *Auction) TimeRemaining(now time.Time) TimeRemaining {
	untilStart := a.StartsAt.Sub(now)
	if untilStart < 0 {
		untilStart = 0
	}
	untilEnd := a.ClosesAt().Sub(now)
	if untilEnd < 0 {
		untilEnd = 0
	}
	return TimeRemaining{UntilStart: untilStart, UntilEnd: untilEnd}
}

// Validate checks field constraints on a listing.
func (a *Auction) Validate() error {
	if !ValidSlug(a.Slug) {
		return shared.ErrInvalidSlug
	}
	if a.DurationMins <= 0 {
		return shared.ErrInvalidDuration
	}
	if a.StartingBid < 0 || a.MinIncrement < 0 || a.MaxIncrement < 0 {
		return shared.ErrInvalidAmounts
	}
	if a.MinIncrement > a.MaxIncrement {
		return shared.ErrIncrementOrder
	}
	return nil
}
