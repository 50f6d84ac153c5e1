package providerRepo

import (
	"context"
	"errors"

	"residora/models"
)

// ErrProviderNotFound is returned when no provider matches the given identifier.
var ErrProviderNotFound = errors.New("provider not found")

// ProviderRepository defines data access for providers and their embedded
// service catalogues.
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	// List returns active providers for browsing, newest first. limit <= 0
	// means no limit.
	List(ctx context.Context, limit int64) ([]models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	Delete(ctx context.Context, id string) error
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error

	// Service catalogue management.
	AddService(ctx context.Context, providerID string, service models.Service) error
	UpdateService(ctx context.Context, providerID string, service models.Service) error
	SetServiceEnabled(ctx context.Context, providerID, serviceID string, enabled bool) error
}
