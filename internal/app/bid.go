package app

import (
	"context"
	"math"
	"time"

	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/domain/bid"
	"curbside-auctions/internal/domain/settings"
	"curbside-auctions/internal/domain/shared"
	"curbside-auctions/internal/ports/inbound"
	"curbside-auctions/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// BidService implements the bidding use cases: validation, anti-sniping
// extension and buy-now settlement. A rejected bid never mutates state.
type BidService struct {
	auctionRepo  outbound.AuctionRepository
	bidRepo      outbound.BidRepository
	settingsRepo outbound.SettingsRepository
	broadcaster  outbound.Broadcaster
	logger       zerolog.Logger
	now          func() time.Time
}

type BidServiceParams struct {
	AuctionRepo  outbound.AuctionRepository
	BidRepo      outbound.BidRepository
	SettingsRepo outbound.SettingsRepository
	Broadcaster  outbound.Broadcaster
	Logger       zerolog.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewBidService creates a new bid service.
func NewBidService(params BidServiceParams) *BidService {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &BidService{
		auctionRepo:  params.AuctionRepo,
		bidRepo:      params.BidRepo,
		settingsRepo: params.SettingsRepo,
		broadcaster:  params.Broadcaster,
		logger:       params.Logger.With().Str("component", "bid_service").Logger(),
		now:          now,
	}
}

// PlaceBid validates a candidate bid and appends it to the auction's
// history. A bid inside the sniping window pushes the close back first.
func (service *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*inbound.BidResult, error) {
	service.logger.Info().
		Str("slug", req.Slug).
		Str("bidder", req.Bidder).
		Float64("amount", req.Amount).
		Msg("Attempting to place bid")

	auc, err := service.auctionRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		service.logger.Warn().Err(err).Str("slug", req.Slug).Msg("Auction not found")
		return nil, err
	}

	now := service.now()
	if !auc.IsLive(now) {
		service.logger.Warn().
			Str("slug", req.Slug).
			Str("status", string(auc.Status(now))).
			Msg("Auction not open for bidding")
		return nil, shared.ErrAuctionNotOpen
	}

	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		service.logger.Warn().Str("slug", req.Slug).Msg("Invalid bid amount")
		return nil, shared.ErrInvalidAmount
	}

	bids, err := service.bidRepo.ListBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	// A buy-now settlement ends the auction even inside the residual
	// whole-minute window left by the duration rewrite.
	if bid.Settled(bids) {
		service.logger.Warn().Str("slug", req.Slug).Msg("Auction already settled via buy now")
		return nil, shared.ErrAuctionNotOpen
	}

	current := bid.CurrentPrice(bids, auc.StartingBid)
	if req.Amount <= current {
		service.logger.Warn().
			Str("slug", req.Slug).
			Float64("current_price", current).
			Float64("amount", req.Amount).
			Msg("Bid must exceed current bid")
		return nil, shared.ErrBidTooLow
	}

	increment := req.Amount - current
	if increment < auc.MinIncrement || increment > auc.MaxIncrement {
		service.logger.Warn().
			Str("slug", req.Slug).
			Float64("increment", increment).
			Float64("min_increment", auc.MinIncrement).
			Float64("max_increment", auc.MaxIncrement).
			Msg("Bid increment out of bounds")
		return nil, shared.ErrIncrementOutOfBounds
	}

	cfg, err := service.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	extended, err := service.maybeExtend(ctx, auc, now, cfg.SnipingExtensionSeconds, cfg.ExtensionAmountSeconds)
	if err != nil {
		return nil, err
	}

	currency := auc.Currency
	if currency == "" {
		currency = cfg.Currency
	}

	newBid := bid.New(req.Bidder, req.Amount, currency, now)
	if err := service.bidRepo.Append(ctx, req.Slug, newBid); err != nil {
		service.logger.Error().Err(err).Str("slug", req.Slug).Msg("Failed to append bid")
		return nil, err
	}
	bids = append(bids, newBid)

	service.publish(ctx, req.Slug, outbound.Event{
		Type: outbound.EventTypeBidPlaced,
		Slug: req.Slug,
		Data: map[string]interface{}{
			"bid_id":        newBid.ID,
			"bidder":        newBid.Bidder,
			"amount":        newBid.Amount,
			"current_price": newBid.Amount,
			"extended":      extended,
		},
		Timestamp: now.Unix(),
	})

	service.logger.Info().
		Str("slug", req.Slug).
		Str("bid_id", newBid.ID.String()).
		Float64("amount", newBid.Amount).
		Bool("extended", extended).
		Msg("Bid placed successfully")

	return &inbound.BidResult{
		Bid:          newBid,
		CurrentPrice: newBid.Amount,
		Bids:         bids,
		Extended:     extended,
	}, nil
}

// BuyNow settles an auction at its buy-now price. The settlement bid is
// appended, then the duration is rewritten so the close instant becomes now
// truncated to whole elapsed minutes, ending the auction.
func (service *BidService) BuyNow(ctx context.Context, req inbound.BuyNowRequest) (*inbound.BidResult, error) {
	service.logger.Info().Str("slug", req.Slug).Str("bidder", req.Bidder).Msg("Attempting buy now")

	auc, err := service.auctionRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	if auc.BuyNowPrice == nil {
		service.logger.Warn().Str("slug", req.Slug).Msg("Buy now not available")
		return nil, shared.ErrBuyNowUnavailable
	}

	now := service.now()
	if !auc.IsLive(now) {
		service.logger.Warn().Str("slug", req.Slug).Msg("Auction not open for buy now")
		return nil, shared.ErrAuctionNotOpen
	}

	bids, err := service.bidRepo.ListBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if bid.Settled(bids) {
		return nil, shared.ErrAuctionNotOpen
	}

	cfg, err := service.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	currency := auc.Currency
	if currency == "" {
		currency = cfg.Currency
	}

	newBid := bid.New(req.Bidder, *auc.BuyNowPrice, currency, now)
	newBid.IsBuyNow = true
	if err := service.bidRepo.Append(ctx, req.Slug, newBid); err != nil {
		return nil, err
	}
	bids = append(bids, newBid)

	auc.DurationMins = int(now.Sub(auc.StartsAt) / time.Minute)
	if err := service.auctionRepo.Update(ctx, auc.Slug, *auc); err != nil {
		service.logger.Error().Err(err).Str("slug", req.Slug).Msg("Failed to close auction after buy now")
		return nil, err
	}

	service.publish(ctx, req.Slug, outbound.Event{
		Type: outbound.EventTypeAuctionEnded,
		Slug: req.Slug,
		Data: map[string]interface{}{
			"reason":      "buy_now",
			"final_price": newBid.Amount,
			"bidder":      newBid.Bidder,
		},
		Timestamp: now.Unix(),
	})

	service.logger.Info().
		Str("slug", req.Slug).
		Float64("price", newBid.Amount).
		Msg("Auction settled via buy now")

	return &inbound.BidResult{
		Bid:          newBid,
		CurrentPrice: newBid.Amount,
		Bids:         bids,
	}, nil
}

// GetBids retrieves the bid history for an auction.
func (service *BidService) GetBids(ctx context.Context, slug string) ([]bid.Bid, error) {
	if _, err := service.auctionRepo.GetBySlug(ctx, slug); err != nil {
		return nil, err
	}
	return service.bidRepo.ListBySlug(ctx, slug)
}

// CurrentPrice returns the current price of an auction: the last accepted
// bid, or the starting bid when history is empty.
func (service *BidService) CurrentPrice(ctx context.Context, slug string) (float64, error) {
	auc, err := service.auctionRepo.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	bids, err := service.bidRepo.ListBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	return bid.CurrentPrice(bids, auc.StartingBid), nil
}

// maybeExtend applies the anti-sniping extension when the bid lands inside
// the trigger window. Extensions can repeat without cap as later bids land
// inside the pushed-back window.
func (service *BidService) maybeExtend(ctx context.Context, auc *auction.Auction, now time.Time, triggerSecs, amountSecs int) (bool, error) {
	secondsLeft := auc.ClosesAt().Sub(now).Seconds()
	if secondsLeft <= 0 || secondsLeft > float64(triggerSecs) {
		return false, nil
	}

	auc.DurationMins += int(math.Ceil(float64(amountSecs) / 60))
	if err := service.auctionRepo.Update(ctx, auc.Slug, *auc); err != nil {
		service.logger.Error().Err(err).Str("slug", auc.Slug).Msg("Failed to persist sniping extension")
		return false, err
	}

	service.logger.Info().
		Str("slug", auc.Slug).
		Int("duration_mins", auc.DurationMins).
		Time("closes_at", auc.ClosesAt()).
		Msg("Anti-sniping extension applied")
	return true, nil
}

func (service *BidService) loadSettings(ctx context.Context) (*settings.Settings, error) {
	cfg, err := service.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		defaults := settings.Defaults()
		return &defaults, nil
	}
	return cfg, nil
}

func (service *BidService) publish(ctx context.Context, slug string, event outbound.Event) {
	if service.broadcaster == nil {
		return
	}
	if err := service.broadcaster.Publish(ctx, slug, event); err != nil {
		// A failed broadcast never fails the bid.
		service.logger.Error().Err(err).Str("slug", slug).Msg("Failed to broadcast event")
	}
}
