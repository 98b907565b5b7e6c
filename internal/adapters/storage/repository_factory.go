package storage

import (
	"curbside-auctions/internal/ports/outbound"
)

// RepositoryFactory creates all key-value-backed repositories over one store.
type RepositoryFactory struct {
	store outbound.KeyValueStore
	bids  *BidRepository
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(store outbound.KeyValueStore) *RepositoryFactory {
	return &RepositoryFactory{
		store: store,
		bids:  NewBidRepository(store),
	}
}

// GetAuctionRepository returns the auction repository.
func (f *RepositoryFactory) GetAuctionRepository() outbound.AuctionRepository {
	return NewAuctionRepository(f.store, f.bids)
}

// GetBidRepository returns the bid repository.
func (f *RepositoryFactory) GetBidRepository() outbound.BidRepository {
	return f.bids
}

// GetSettingsRepository returns the settings repository.
func (f *RepositoryFactory) GetSettingsRepository() outbound.SettingsRepository {
	return NewSettingsRepository(f.store)
}
