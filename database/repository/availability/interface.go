package availabilityRepo

import (
	"context"

	"residora/models"
)

// AvailabilityRepository is the store of per-provider recurring weekly windows.
// One window per (provider, weekday); Upsert replaces any prior window.
type AvailabilityRepository interface {
	Upsert(ctx context.Context, window models.AvailabilityWindow) error
	Delete(ctx context.Context, providerID string, weekday int) error
	GetByProviderAndWeekday(ctx context.Context, providerID string, weekday int) (*models.AvailabilityWindow, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)
}
