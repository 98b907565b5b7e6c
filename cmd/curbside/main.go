package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"curbside-auctions/internal/adapters/broadcaster"
	"curbside-auctions/internal/adapters/memory"
	"curbside-auctions/internal/adapters/postgres"
	"curbside-auctions/internal/adapters/redis"
	"curbside-auctions/internal/adapters/sqlite"
	"curbside-auctions/internal/adapters/storage"
	"curbside-auctions/internal/adapters/ticker"
	"curbside-auctions/internal/adapters/ws"
	"curbside-auctions/internal/api"
	"curbside-auctions/internal/app"
	"curbside-auctions/internal/auth"
	"curbside-auctions/internal/config"
	"curbside-auctions/internal/ports/outbound"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Str("backend", cfg.Store.Backend).Msg("Starting Curbside Auctions...")

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open key-value store")
	}
	defer store.Close()

	repoFactory := storage.NewRepositoryFactory(store)
	auctionRepo := repoFactory.GetAuctionRepository()
	bidRepo := repoFactory.GetBidRepository()
	settingsRepo := repoFactory.GetSettingsRepository()

	log.Info().Msg("Repositories initialized")

	localBroadcaster := broadcaster.NewBroadcaster(broadcaster.LocalBroadcasterParams{
		Logger: log.Logger,
	})

	settingsService := app.NewSettingsService(app.SettingsServiceParams{
		SettingsRepo:    settingsRepo,
		DefaultPassword: cfg.Auth.DefaultAdminPassword,
		Logger:          log.Logger,
	})
	auctionService := app.NewAuctionService(app.AuctionServiceParams{
		AuctionRepo:  auctionRepo,
		SettingsRepo: settingsRepo,
		Logger:       log.Logger,
	})
	bidService := app.NewBidService(app.BidServiceParams{
		AuctionRepo:  auctionRepo,
		BidRepo:      bidRepo,
		SettingsRepo: settingsRepo,
		Broadcaster:  localBroadcaster,
		Logger:       log.Logger,
	})
	authService := auth.NewAuthService(auth.AuthServiceParams{
		SettingsRepo: settingsRepo,
		Secret:       cfg.Auth.JWTSecret,
		TokenTTL:     time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		Logger:       log.Logger,
	})

	// First-run initialization of the settings record.
	if _, err := settingsService.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize settings")
	}

	log.Info().Msg("Services initialized")

	wsHandler := ws.NewHandler(ws.WsHandlerParams{
		Config:      cfg,
		AuctionRepo: auctionRepo,
		Broadcaster: localBroadcaster,
		Logger:      log.Logger,
	})

	countdown := ticker.NewCountdownTicker(ticker.CountdownTickerParams{
		AuctionRepo: auctionRepo,
		Broadcaster: localBroadcaster,
		Logger:      log.Logger,
	})
	countdown.Start()

	handler := api.NewHandler(api.HandlerParams{
		Auctions:    auctionService,
		Bids:        bidService,
		Settings:    settingsService,
		AuthService: authService,
		Logger:      log.Logger,
	})
	router := api.NewRouter(handler, wsHandler.HandleWebSocket)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Minute,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	countdown.Stop()
	wsHandler.Shutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	log.Info().Msg("Graceful shutdown completed")
}

func openStore(cfg *config.Config) (outbound.KeyValueStore, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return sqlite.NewStore(cfg.Store.SQLitePath)
	case "postgres":
		return postgres.NewStore(cfg.Store.PostgresURL)
	case "redis":
		return redis.NewStore(cfg)
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func initLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	zerolog.DefaultContextLogger = &log.Logger
}
