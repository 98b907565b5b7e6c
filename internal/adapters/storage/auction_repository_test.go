package storage

import (
	"context"
	"testing"
	"time"

	"curbside-auctions/internal/adapters/memory"
	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/domain/bid"
	"curbside-auctions/internal/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepos() (*AuctionRepository, *BidRepository) {
	store := memory.NewStore()
	bids := NewBidRepository(store)
	return NewAuctionRepository(store, bids), bids
}

func storedAuction(slug string) auction.Auction {
	return auction.Auction{
		Slug:         slug,
		Title:        "Stored Item",
		StartsAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		DurationMins: 30,
		StartingBid:  10,
		MinIncrement: 1,
		MaxIncrement: 1000,
		Currency:     "$",
	}
}

func TestAuctionRepository_CreateAndGet(t *testing.T) {
	repo, _ := newRepos()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedAuction("first")))

	got, err := repo.GetBySlug(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "Stored Item", got.Title)
	assert.True(t, got.StartsAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))

	_, err = repo.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrAuctionNotFound)
}

func TestAuctionRepository_Create_DuplicateSlug(t *testing.T) {
	repo, _ := newRepos()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedAuction("first")))
	assert.ErrorIs(t, repo.Create(ctx, storedAuction("first")), shared.ErrSlugTaken)
}

func TestAuctionRepository_List_EmptyStore(t *testing.T) {
	repo, _ := newRepos()

	auctions, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auctions)
}

func TestAuctionRepository_Update(t *testing.T) {
	repo, _ := newRepos()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedAuction("first")))

	updated := storedAuction("first")
	updated.Title = "Renamed Item"
	require.NoError(t, repo.Update(ctx, "first", updated))

	got, err := repo.GetBySlug(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Item", got.Title)
}

func TestAuctionRepository_Update_RenameMovesBids(t *testing.T) {
	repo, bids := newRepos()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, storedAuction("first")))
	require.NoError(t, bids.Append(ctx, "first", bid.New("Jane", 15, "$", now)))

	renamed := storedAuction("second")
	require.NoError(t, repo.Update(ctx, "first", renamed))

	moved, err := bids.ListBySlug(ctx, "second")
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, 15.0, moved[0].Amount)

	orphaned, err := bids.ListBySlug(ctx, "first")
	require.NoError(t, err)
	assert.Empty(t, orphaned)
}

func TestAuctionRepository_Update_RenameOntoTakenSlug(t *testing.T) {
	repo, _ := newRepos()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedAuction("first")))
	require.NoError(t, repo.Create(ctx, storedAuction("second")))

	assert.ErrorIs(t, repo.Update(ctx, "first", storedAuction("second")), shared.ErrSlugTaken)
}

func TestAuctionRepository_Update_NotFound(t *testing.T) {
	repo, _ := newRepos()
	assert.ErrorIs(t, repo.Update(context.Background(), "missing", storedAuction("missing")), shared.ErrAuctionNotFound)
}

func TestAuctionRepository_Delete_CascadesBids(t *testing.T) {
	repo, bids := newRepos()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedAuction("first")))
	require.NoError(t, bids.Append(ctx, "first", bid.New("Jane", 15, "$", time.Now())))

	require.NoError(t, repo.Delete(ctx, "first"))

	_, err := repo.GetBySlug(ctx, "first")
	assert.ErrorIs(t, err, shared.ErrAuctionNotFound)

	history, err := bids.ListBySlug(ctx, "first")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAuctionRepository_Delete_NotFound(t *testing.T) {
	repo, _ := newRepos()
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), shared.ErrAuctionNotFound)
}
