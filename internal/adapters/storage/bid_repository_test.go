package storage

import (
	"context"
	"testing"
	"time"

	"curbside-auctions/internal/adapters/memory"
	"curbside-auctions/internal/domain/bid"
	"curbside-auctions/internal/domain/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidRepository_AppendPreservesOrder(t *testing.T) {
	repo := NewBidRepository(memory.NewStore())
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, amount := range []float64{15, 17.5, 20} {
		require.NoError(t, repo.Append(ctx, "test-item", bid.New("Jane", amount, "$", now.Add(time.Duration(i)*time.Second))))
	}

	bids, err := repo.ListBySlug(ctx, "test-item")
	require.NoError(t, err)
	require.Len(t, bids, 3)
	assert.Equal(t, 15.0, bids[0].Amount)
	assert.Equal(t, 17.5, bids[1].Amount)
	assert.Equal(t, 20.0, bids[2].Amount)
	assert.True(t, bids[0].Time.Before(bids[2].Time))
}

func TestBidRepository_ListBySlug_MissingKey(t *testing.T) {
	repo := NewBidRepository(memory.NewStore())

	bids, err := repo.ListBySlug(context.Background(), "never-bid-on")
	require.NoError(t, err)
	assert.Empty(t, bids)
}

func TestBidRepository_RoundTripPreservesFields(t *testing.T) {
	repo := NewBidRepository(memory.NewStore())
	ctx := context.Background()

	placed := bid.New("Jane D.", 32.5, "€", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	placed.IsBuyNow = true
	require.NoError(t, repo.Append(ctx, "test-item", placed))

	bids, err := repo.ListBySlug(ctx, "test-item")
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.Equal(t, placed.ID, bids[0].ID)
	assert.Equal(t, "Jane D.", bids[0].Bidder)
	assert.Equal(t, "€", bids[0].Currency)
	assert.True(t, bids[0].IsBuyNow)
	assert.True(t, placed.Time.Equal(bids[0].Time))
}

func TestBidRepository_DeleteBySlug(t *testing.T) {
	repo := NewBidRepository(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "test-item", bid.New("Jane", 15, "$", time.Now())))
	require.NoError(t, repo.DeleteBySlug(ctx, "test-item"))

	bids, err := repo.ListBySlug(ctx, "test-item")
	require.NoError(t, err)
	assert.Empty(t, bids)

	// Deleting a missing key is a no-op.
	assert.NoError(t, repo.DeleteBySlug(ctx, "never-existed"))
}

func TestSettingsRepository_RoundTrip(t *testing.T) {
	repo := NewSettingsRepository(memory.NewStore())
	ctx := context.Background()

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded, "empty store yields no settings")

	cfg := settings.Defaults()
	cfg.AdminPassHash = "some-hash"
	cfg.SnipingExtensionSeconds = 300
	require.NoError(t, repo.Save(ctx, cfg))

	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "some-hash", loaded.AdminPassHash)
	assert.Equal(t, 300, loaded.SnipingExtensionSeconds)
}
