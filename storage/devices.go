package storage

import (
	"context"
	"sync"
	"time"

	"ramotsav.com/project-ramotsav/models"
)

// DeviceRegistry owns the device-tokens/<uid> documents. Registration and
// pruning share its lock, so neither can overwrite the other's write.
type DeviceRegistry struct {
	mu    sync.Mutex
	store DocumentStore
}

func NewDeviceRegistry(store DocumentStore) *DeviceRegistry {
	return &DeviceRegistry{store: store}
}

func (d *DeviceRegistry) Tokens(ctx context.Context, userID string) []models.DeviceToken {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Load(ctx, d.store, DeviceTokensKey(userID), []models.DeviceToken{})
}

// Register adds token, moving it to the end with a fresh timestamp when it
// is already known.
func (d *DeviceRegistry) Register(ctx context.Context, userID, token string, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := DeviceTokensKey(userID)
	current := Load(ctx, d.store, key, []models.DeviceToken{})
	next := make([]models.DeviceToken, 0, len(current)+1)
	for _, t := range current {
		if t.Token != token {
			next = append(next, t)
		}
	}
	next = append(next, models.DeviceToken{Token: token, UpdatedAt: at})
	Save(ctx, d.store, key, next)
}

// Prune drops the dead tokens from the current document and reports how
// many were removed.
func (d *DeviceRegistry) Prune(ctx context.Context, userID string, dead map[string]bool) int {
	if len(dead) == 0 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	key := DeviceTokensKey(userID)
	current := Load(ctx, d.store, key, []models.DeviceToken{})
	alive := make([]models.DeviceToken, 0, len(current))
	for _, t := range current {
		if !dead[t.Token] {
			alive = append(alive, t)
		}
	}
	removed := len(current) - len(alive)
	if removed > 0 {
		Save(ctx, d.store, key, alive)
	}
	return removed
}
