package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"curbside-auctions/internal/domain/bid"
	"curbside-auctions/internal/ports/outbound"
)

// BidRepository persists per-auction bid histories as JSON blobs in the
// key-value store.
type BidRepository struct {
	store outbound.KeyValueStore
}

// NewBidRepository creates a new bid repository.
func NewBidRepository(store outbound.KeyValueStore) *BidRepository {
	return &BidRepository{store: store}
}

// ListBySlug retrieves the bid history for an auction. A missing key means
// no bids have been placed yet.
func (r *BidRepository) ListBySlug(ctx context.Context, slug string) ([]bid.Bid, error) {
	raw, ok, err := r.store.Get(ctx, bidsKey(slug))
	if err != nil {
		return nil, fmt.Errorf("failed to load bids for %q: %w", slug, err)
	}
	if !ok {
		return []bid.Bid{}, nil
	}

	var bids []bid.Bid
	if err := json.Unmarshal(raw, &bids); err != nil {
		return nil, fmt.Errorf("failed to decode bids for %q: %w", slug, err)
	}
	return bids, nil
}

// Append adds a bid to the end of an auction's history.
func (r *BidRepository) Append(ctx context.Context, slug string, b bid.Bid) error {
	bids, err := r.ListBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return r.save(ctx, slug, append(bids, b))
}

// Move copies the history from oldSlug to newSlug and removes the old key.
// Used on slug rename; the two writes are a single combined sequence with no
// rollback on partial failure.
func (r *BidRepository) Move(ctx context.Context, oldSlug, newSlug string) error {
	bids, err := r.ListBySlug(ctx, oldSlug)
	if err != nil {
		return err
	}
	if err := r.save(ctx, newSlug, bids); err != nil {
		return err
	}
	return r.DeleteBySlug(ctx, oldSlug)
}

// DeleteBySlug removes an auction's entire bid history.
func (r *BidRepository) DeleteBySlug(ctx context.Context, slug string) error {
	if err := r.store.Delete(ctx, bidsKey(slug)); err != nil {
		return fmt.Errorf("failed to delete bids for %q: %w", slug, err)
	}
	return nil
}

func (r *BidRepository) save(ctx context.Context, slug string, bids []bid.Bid) error {
	raw, err := json.Marshal(bids)
	if err != nil {
		return fmt.Errorf("failed to encode bids for %q: %w", slug, err)
	}
	if err := r.store.Set(ctx, bidsKey(slug), raw); err != nil {
		return fmt.Errorf("failed to save bids for %q: %w", slug, err)
	}
	return nil
}
