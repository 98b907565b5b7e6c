package bid

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultBidder is recorded when a bidder submits without a name.
const DefaultBidder = "Anonymous"

// Bid is one entry in an auction's append-only history. Bids are never
// mutated or deleted individually, only wholesale-removed with the auction.
type Bid struct {
	ID       uuid.UUID `json:"id"`
	Bidder   string    `json:"bidder"`
	Amount   float64   `json:"amount"`
	Time     time.Time `json:"time"`
	Currency string    `json:"currency"`
	IsBuyNow bool      `json:"is_buy_now,omitempty"`
}

// New constructs an accepted bid: the amount is rounded to 2 decimal places
// and a blank bidder name falls back to DefaultBidder.
func New(bidder string, amount float64, currency string, now time.Time) Bid {
	if bidder == "" {
		bidder = DefaultBidder
	}
	return Bid{
		ID:       uuid.New(),
		Bidder:   bidder,
		Amount:   math.Round(amount*100) / 100,
		Time:     now,
		Currency: currency,
	}
}

// CurrentPrice returns the amount of the last bid in history, or the
// starting bid when no bids have been placed. Append order is chronological,
// so the last element is always the highest accepted bid.
func CurrentPrice(bids []Bid, startingBid float64) float64 {
	if len(bids) == 0 {
		return startingBid
	}
	return bids[len(bids)-1].Amount
}

// Settled reports whether the history ends with a buy-now settlement.
func Settled(bids []Bid) bool {
	return len(bids) > 0 && bids[len(bids)-1].IsBuyNow
}
