package app

import (
	"context"
	"testing"

	"curbside-auctions/internal/adapters/memory"
	"curbside-auctions/internal/adapters/storage"
	"curbside-auctions/internal/ports/inbound"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSettingsService() *SettingsService {
	factory := storage.NewRepositoryFactory(memory.NewStore())
	return NewSettingsService(SettingsServiceParams{
		SettingsRepo:    factory.GetSettingsRepository(),
		DefaultPassword: "password123",
		Logger:          zerolog.Nop(),
	})
}

func TestSettingsService_FirstRunInitialization(t *testing.T) {
	service := newSettingsService()
	ctx := context.Background()

	cfg, err := service.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, "$", cfg.Currency)
	assert.Equal(t, 120, cfg.SnipingExtensionSeconds)
	assert.Equal(t, 120, cfg.ExtensionAmountSeconds)

	// The default password is stored hashed, never in plaintext.
	assert.NotEqual(t, "password123", cfg.AdminPassHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPassHash), []byte("password123")))

	// A second load returns the persisted record rather than re-initializing.
	again, err := service.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.AdminPassHash, again.AdminPassHash)
}

func TestSettingsService_Save(t *testing.T) {
	service := newSettingsService()
	ctx := context.Background()

	_, err := service.Load(ctx)
	require.NoError(t, err)

	updated, err := service.Save(ctx, inbound.SaveSettingsRequest{
		AdminUser:               "boss",
		Currency:                "€",
		SnipingExtensionSeconds: 300,
		ExtensionAmountSeconds:  90,
		Timezone:                "Europe/Berlin",
	})
	require.NoError(t, err)
	assert.Equal(t, "boss", updated.AdminUser)
	assert.Equal(t, "€", updated.Currency)
	assert.Equal(t, 300, updated.SnipingExtensionSeconds)
	assert.Equal(t, 90, updated.ExtensionAmountSeconds)
	assert.Equal(t, "Europe/Berlin", updated.Timezone)
}

func TestSettingsService_Save_ClampsExtensionKnobs(t *testing.T) {
	service := newSettingsService()
	ctx := context.Background()

	updated, err := service.Save(ctx, inbound.SaveSettingsRequest{
		SnipingExtensionSeconds: 100000,
		ExtensionAmountSeconds:  -5,
	})
	require.NoError(t, err)
	assert.Equal(t, 3600, updated.SnipingExtensionSeconds)
	assert.Equal(t, 0, updated.ExtensionAmountSeconds)
}

func TestSettingsService_Save_BlankPasswordKeepsHash(t *testing.T) {
	service := newSettingsService()
	ctx := context.Background()

	before, err := service.Load(ctx)
	require.NoError(t, err)

	updated, err := service.Save(ctx, inbound.SaveSettingsRequest{AdminUser: "boss"})
	require.NoError(t, err)
	assert.Equal(t, before.AdminPassHash, updated.AdminPassHash)

	rotated, err := service.Save(ctx, inbound.SaveSettingsRequest{NewPassword: "hunter2"})
	require.NoError(t, err)
	assert.NotEqual(t, before.AdminPassHash, rotated.AdminPassHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rotated.AdminPassHash), []byte("hunter2")))
}
