package ticker

import (
	"context"
	"sync"
	"time"

	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// CountdownTicker re-derives lifecycle state once per second for every
// auction somebody is watching, publishing countdown events and a one-shot
// ended event on the live-to-ended transition. Auctions without subscribers
// cost nothing.
type CountdownTicker struct {
	auctionRepo outbound.AuctionRepository
	broadcaster outbound.Broadcaster
	interval    time.Duration
	lastStatus  map[string]auction.Status
	logger      zerolog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

type CountdownTickerParams struct {
	AuctionRepo outbound.AuctionRepository
	Broadcaster outbound.Broadcaster
	// Interval overrides the sweep period; zero means one second.
	Interval time.Duration
	Logger   zerolog.Logger
}

// NewCountdownTicker creates a new countdown ticker.
func NewCountdownTicker(params CountdownTickerParams) *CountdownTicker {
	ctx, cancel := context.WithCancel(context.Background())

	interval := params.Interval
	if interval <= 0 {
		interval = time.Second
	}

	return &CountdownTicker{
		auctionRepo: params.AuctionRepo,
		broadcaster: params.Broadcaster,
		interval:    interval,
		lastStatus:  make(map[string]auction.Status),
		logger:      params.Logger.With().Str("component", "countdown_ticker").Logger(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins the sweep loop.
func (t *CountdownTicker) Start() {
	t.logger.Info().Dur("interval", t.interval).Msg("Starting countdown ticker")
	t.wg.Add(1)
	go t.loop()
}

// Stop halts the sweep loop and waits for it to finish.
func (t *CountdownTicker) Stop() {
	t.cancel()
	t.wg.Wait()
	t.logger.Info().Msg("Countdown ticker stopped")
}

func (t *CountdownTicker) loop() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case now := <-ticker.C:
			t.sweep(now)
		}
	}
}

func (t *CountdownTicker) sweep(now time.Time) {
	watched := t.broadcaster.Watched(t.ctx)
	seen := make(map[string]bool, len(watched))

	for _, slug := range watched {
		seen[slug] = true

		auc, err := t.auctionRepo.GetBySlug(t.ctx, slug)
		if err != nil {
			t.logger.Warn().Err(err).Str("slug", slug).Msg("Failed to load watched auction")
			continue
		}

		status := auc.Status(now)
		remaining := auc.TimeRemaining(now)

		t.publish(slug, outbound.Event{
			Type: outbound.EventTypeCountdown,
			Slug: slug,
			Data: map[string]interface{}{
				"status":           string(status),
				"until_start_secs": int(remaining.UntilStart.Seconds()),
				"until_end_secs":   int(remaining.UntilEnd.Seconds()),
			},
			Timestamp: now.Unix(),
		})

		if t.lastStatus[slug] == auction.StatusLive && status == auction.StatusEnded {
			t.publish(slug, outbound.Event{
				Type:      outbound.EventTypeAuctionEnded,
				Slug:      slug,
				Data:      map[string]interface{}{"reason": "closed"},
				Timestamp: now.Unix(),
			})
			t.logger.Info().Str("slug", slug).Msg("Auction reached its close")
		}
		t.lastStatus[slug] = status
	}

	// Forget auctions nobody watches anymore.
	for slug := range t.lastStatus {
		if !seen[slug] {
			delete(t.lastStatus, slug)
		}
	}
}

func (t *CountdownTicker) publish(slug string, event outbound.Event) {
	if err := t.broadcaster.Publish(t.ctx, slug, event); err != nil {
		t.logger.Error().Err(err).Str("slug", slug).Msg("Failed to publish tick")
	}
}
