package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"curbside-auctions/internal/domain/settings"
	"curbside-auctions/internal/ports/outbound"
)

// SettingsRepository persists the settings singleton as a JSON blob.
type SettingsRepository struct {
	store outbound.KeyValueStore
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(store outbound.KeyValueStore) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Load retrieves the stored settings, or nil when none exist yet.
func (r *SettingsRepository) Load(ctx context.Context) (*settings.Settings, error) {
	raw, ok, err := r.store.Get(ctx, settingsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var s settings.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

// Save persists the settings singleton.
func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := r.store.Set(ctx, settingsKey, raw); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
