package app

import (
	"context"
	"sort"
	"time"

	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/domain/shared"
	"curbside-auctions/internal/ports/inbound"
	"curbside-auctions/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// AuctionService implements the listing management use cases.
type AuctionService struct {
	auctionRepo  outbound.AuctionRepository
	settingsRepo outbound.SettingsRepository
	logger       zerolog.Logger
}

type AuctionServiceParams struct {
	AuctionRepo  outbound.AuctionRepository
	SettingsRepo outbound.SettingsRepository
	Logger       zerolog.Logger
}

// NewAuctionService creates a new auction service.
func NewAuctionService(params AuctionServiceParams) *AuctionService {
	return &AuctionService{
		auctionRepo:  params.AuctionRepo,
		settingsRepo: params.SettingsRepo,
		logger:       params.Logger.With().Str("component", "auction_service").Logger(),
	}
}

// CreateAuction creates a new listing. The slug is normalized from the
// request slug, falling back to the title.
func (service *AuctionService) CreateAuction(ctx context.Context, req inbound.SaveAuctionRequest) (*auction.Auction, error) {
	service.logger.Info().
		Str("slug", req.Slug).
		Str("title", req.Title).
		Msg("Attempting to create auction")

	auc, err := service.buildAuction(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := service.auctionRepo.Create(ctx, *auc); err != nil {
		service.logger.Warn().Err(err).Str("slug", auc.Slug).Msg("Failed to create auction")
		return nil, err
	}

	service.logger.Info().Str("slug", auc.Slug).Msg("Auction created successfully")
	return auc, nil
}

// UpdateAuction replaces the listing stored under slug. When the slug
// changes, the bid history follows it to the new key.
func (service *AuctionService) UpdateAuction(ctx context.Context, slug string, req inbound.SaveAuctionRequest) (*auction.Auction, error) {
	if _, err := service.auctionRepo.GetBySlug(ctx, slug); err != nil {
		return nil, err
	}

	auc, err := service.buildAuction(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := service.auctionRepo.Update(ctx, slug, *auc); err != nil {
		service.logger.Warn().Err(err).Str("slug", slug).Str("new_slug", auc.Slug).Msg("Failed to update auction")
		return nil, err
	}

	if slug != auc.Slug {
		service.logger.Info().
			Str("old_slug", slug).
			Str("new_slug", auc.Slug).
			Msg("Auction renamed, bid history migrated")
	}
	return auc, nil
}

// DeleteAuction removes a listing along with its bid history.
func (service *AuctionService) DeleteAuction(ctx context.Context, slug string) error {
	if err := service.auctionRepo.Delete(ctx, slug); err != nil {
		return err
	}
	service.logger.Info().Str("slug", slug).Msg("Auction deleted")
	return nil
}

// GetAuction retrieves a listing by slug.
func (service *AuctionService) GetAuction(ctx context.Context, slug string) (*auction.Auction, error) {
	return service.auctionRepo.GetBySlug(ctx, slug)
}

// ListAuctions retrieves all listings sorted by start time for display.
func (service *AuctionService) ListAuctions(ctx context.Context) ([]auction.Auction, error) {
	auctions, err := service.auctionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(auctions, func(i, j int) bool {
		return auctions[i].StartsAt.Before(auctions[j].StartsAt)
	})
	return auctions, nil
}

func (service *AuctionService) buildAuction(ctx context.Context, req inbound.SaveAuctionRequest) (*auction.Auction, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		service.logger.Warn().Err(err).Str("starts_at", req.StartsAt).Msg("Invalid start time format")
		return nil, shared.ErrInvalidStartTime
	}

	slug := req.Slug
	if slug == "" {
		slug = req.Title
	}
	slug = auction.Slugify(slug)

	currency := req.Currency
	if currency == "" {
		cfg, err := service.settingsRepo.Load(ctx)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			currency = cfg.Currency
		}
	}

	auc := &auction.Auction{
		Slug:         slug,
		Title:        req.Title,
		Description:  req.Description,
		StartsAt:     startsAt,
		DurationMins: req.DurationMins,
		StartingBid:  req.StartingBid,
		MinIncrement: req.MinIncrement,
		MaxIncrement: req.MaxIncrement,
		Currency:     currency,
		ReservePrice: req.ReservePrice,
		BuyNowPrice:  req.BuyNowPrice,
	}

	if err := auc.Validate(); err != nil {
		service.logger.Warn().Err(err).Str("slug", slug).Msg("Auction validation failed")
		return nil, err
	}
	return auc, nil
}
