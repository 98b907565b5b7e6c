package app

import (
	"context"

	"curbside-auctions/internal/auth"
	"curbside-auctions/internal/domain/settings"
	"curbside-auctions/internal/ports/inbound"
	"curbside-auctions/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// SettingsService manages the settings singleton, including first-run
// initialization of the default credential hash.
type SettingsService struct {
	settingsRepo    outbound.SettingsRepository
	defaultPassword string
	logger          zerolog.Logger
}

type SettingsServiceParams struct {
	SettingsRepo outbound.SettingsRepository
	// DefaultPassword is hashed and stored on first run.
	DefaultPassword string
	Logger          zerolog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(params SettingsServiceParams) *SettingsService {
	return &SettingsService{
		settingsRepo:    params.SettingsRepo,
		defaultPassword: params.DefaultPassword,
		logger:          params.Logger.With().Str("component", "settings_service").Logger(),
	}
}

// Load returns the settings, initializing and persisting defaults when none
// exist yet. Only the hash of the default password is ever stored.
func (service *SettingsService) Load(ctx context.Context) (*settings.Settings, error) {
	stored, err := service.settingsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored, nil
	}

	defaults := settings.Defaults()
	hash, err := auth.HashPassword(service.defaultPassword)
	if err != nil {
		return nil, err
	}
	defaults.AdminPassHash = hash

	if err := service.settingsRepo.Save(ctx, defaults); err != nil {
		return nil, err
	}
	service.logger.Info().Msg("Settings initialized with defaults")
	return &defaults, nil
}

// Save applies a settings update. Blank fields keep their current values
// and a blank password keeps the current hash; the anti-sniping knobs are
// clamped to their allowed range.
func (service *SettingsService) Save(ctx context.Context, req inbound.SaveSettingsRequest) (*settings.Settings, error) {
	current, err := service.Load(ctx)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.AdminUser != "" {
		updated.AdminUser = req.AdminUser
	}
	if req.NewPassword != "" {
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return nil, err
		}
		updated.AdminPassHash = hash
	}
	if req.Currency != "" {
		updated.Currency = req.Currency
	}
	if req.Timezone != "" {
		updated.Timezone = req.Timezone
	}
	updated.SnipingExtensionSeconds = req.SnipingExtensionSeconds
	updated.ExtensionAmountSeconds = req.ExtensionAmountSeconds
	updated.Clamp()

	if err := service.settingsRepo.Save(ctx, updated); err != nil {
		return nil, err
	}

	service.logger.Info().
		Int("sniping_extension_seconds", updated.SnipingExtensionSeconds).
		Int("extension_amount_seconds", updated.ExtensionAmountSeconds).
		Bool("password_rotated", req.NewPassword != "").
		Msg("Settings saved")
	return &updated, nil
}
