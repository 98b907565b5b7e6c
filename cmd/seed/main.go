package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"curbside-auctions/internal/adapters/storage"
	"curbside-auctions/internal/adapters/sqlite"
	"curbside-auctions/internal/app"
	"curbside-auctions/internal/config"
	"curbside-auctions/internal/ports/inbound"
)

// Seed the store with demo listings.
func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store, err := sqlite.NewStore(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	ctx := context.Background()
	repoFactory := storage.NewRepositoryFactory(store)

	settingsService := app.NewSettingsService(app.SettingsServiceParams{
		SettingsRepo:    repoFactory.GetSettingsRepository(),
		DefaultPassword: cfg.Auth.DefaultAdminPassword,
		Logger:          log.Logger,
	})
	if _, err := settingsService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize settings")
	}

	auctionService := app.NewAuctionService(app.AuctionServiceParams{
		AuctionRepo:  repoFactory.GetAuctionRepository(),
		SettingsRepo: repoFactory.GetSettingsRepository(),
		Logger:       log.Logger,
	})

	existing, err := auctionService.ListAuctions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list auctions")
	}
	if len(existing) > 0 {
		fmt.Printf("Store already has %d auctions. No need to seed.\n", len(existing))
		os.Exit(0)
	}

	buyNow := 500.0
	reserve := 150.0
	demos := []inbound.SaveAuctionRequest{
		{
			Slug:         "vintage-road-bike",
			Title:        "Vintage Road Bike",
			Description:  "A 1980s steel-frame road bike, recently serviced.",
			StartsAt:     time.Now().Add(time.Hour).Format(time.RFC3339),
			DurationMins: 60,
			StartingBid:  50,
			MinIncrement: 5,
			MaxIncrement: 100,
			ReservePrice: &reserve,
		},
		{
			Slug:         "mid-century-armchair",
			Title:        "Mid-Century Armchair",
			Description:  "Teak armchair, reupholstered in wool.",
			StartsAt:     time.Now().Format(time.RFC3339),
			DurationMins: 30,
			StartingBid:  10,
			MinIncrement: 1,
			MaxIncrement: 1000,
			BuyNowPrice:  &buyNow,
		},
	}

	for _, req := range demos {
		if _, err := auctionService.CreateAuction(ctx, req); err != nil {
			log.Fatal().Err(err).Str("slug", req.Slug).Msg("Failed to seed auction")
		}
		fmt.Printf("Seeded auction /%s\n", req.Slug)
	}
}
