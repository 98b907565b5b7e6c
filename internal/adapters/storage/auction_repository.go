package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/domain/shared"
	"curbside-auctions/internal/ports/outbound"
)

// AuctionRepository persists the auction collection as a single JSON blob in
// the key-value store. Stored order carries no meaning; callers sort for
// display.
type AuctionRepository struct {
	store outbound.KeyValueStore
	bids  *BidRepository
}

// NewAuctionRepository creates a new auction repository.
func NewAuctionRepository(store outbound.KeyValueStore, bids *BidRepository) *AuctionRepository {
	return &AuctionRepository{store: store, bids: bids}
}

// List retrieves all auctions in stored order.
func (r *AuctionRepository) List(ctx context.Context) ([]auction.Auction, error) {
	raw, ok, err := r.store.Get(ctx, auctionsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load auction list: %w", err)
	}
	if !ok {
		return []auction.Auction{}, nil
	}

	var auctions []auction.Auction
	if err := json.Unmarshal(raw, &auctions); err != nil {
		return nil, fmt.Errorf("failed to decode auction list: %w", err)
	}
	return auctions, nil
}

// GetBySlug retrieves an auction by slug.
func (r *AuctionRepository) GetBySlug(ctx context.Context, slug string) (*auction.Auction, error) {
	auctions, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range auctions {
		if auctions[i].Slug == slug {
			a := auctions[i]
			return &a, nil
		}
	}
	return nil, shared.ErrAuctionNotFound
}

// Create inserts a new auction, enforcing slug uniqueness.
func (r *AuctionRepository) Create(ctx context.Context, a auction.Auction) error {
	auctions, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range auctions {
		if auctions[i].Slug == a.Slug {
			return shared.ErrSlugTaken
		}
	}
	return r.save(ctx, append(auctions, a))
}

// Update replaces the auction stored under oldSlug. On rename the target
// slug must be free and the bid history is migrated to the new key.
func (r *AuctionRepository) Update(ctx context.Context, oldSlug string, a auction.Auction) error {
	auctions, err := r.List(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range auctions {
		if auctions[i].Slug == oldSlug {
			idx = i
		} else if auctions[i].Slug == a.Slug {
			return shared.ErrSlugTaken
		}
	}
	if idx == -1 {
		return shared.ErrAuctionNotFound
	}

	if oldSlug != a.Slug {
		if err := r.bids.Move(ctx, oldSlug, a.Slug); err != nil {
			return err
		}
	}

	auctions[idx] = a
	return r.save(ctx, auctions)
}

// Delete removes an auction and cascade-deletes its bid history.
func (r *AuctionRepository) Delete(ctx context.Context, slug string) error {
	auctions, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := auctions[:0]
	found := false
	for _, a := range auctions {
		if a.Slug == slug {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return shared.ErrAuctionNotFound
	}

	if err := r.save(ctx, kept); err != nil {
		return err
	}
	return r.bids.DeleteBySlug(ctx, slug)
}

func (r *AuctionRepository) save(ctx context.Context, auctions []auction.Auction) error {
	raw, err := json.Marshal(auctions)
	if err != nil {
		return fmt.Errorf("failed to encode auction list: %w", err)
	}
	if err := r.store.Set(ctx, auctionsKey, raw); err != nil {
		return fmt.Errorf("failed to save auction list: %w", err)
	}
	return nil
}
