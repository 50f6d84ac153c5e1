package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	availabilityRepo "residora/database/repository/availability"
	providerRepo "residora/database/repository/provider"
	"residora/models"
)

// DefaultProviderService implements ProviderService backed by the provider
// and availability repositories.
type DefaultProviderService struct {
	Repo    providerRepo.ProviderRepository
	Windows availabilityRepo.AvailabilityRepository
}

var _ ProviderService = (*DefaultProviderService)(nil)

func (s *DefaultProviderService) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultProviderService) ListProviders(ctx context.Context, limit int64) ([]models.Provider, error) {
	return s.Repo.List(ctx, limit)
}

func (s *DefaultProviderService) SetProfileImage(ctx context.Context, providerID, imageURL string) error {
	provider, err := s.Repo.GetByID(ctx, providerID)
	if err != nil {
		return err
	}
	provider.ImageURL = imageURL
	return s.Repo.Update(ctx, provider)
}

// AddService adds a catalogue entry. IDs are assigned server-side and new
// services are bookable immediately.
func (s *DefaultProviderService) AddService(ctx context.Context, providerID string, svc models.Service) (*models.Service, error) {
	if svc.Name == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if svc.Price <= 0 {
		return nil, fmt.Errorf("service price must be positive")
	}
	svc.ID = uuid.NewString()
	svc.Enabled = true
	if err := s.Repo.AddService(ctx, providerID, svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *DefaultProviderService) UpdateService(ctx context.Context, providerID string, svc models.Service) error {
	if svc.ID == "" {
		return fmt.Errorf("service id is required")
	}
	if svc.Price <= 0 {
		return fmt.Errorf("service price must be positive")
	}
	return s.Repo.UpdateService(ctx, providerID, svc)
}

func (s *DefaultProviderService) SetServiceEnabled(ctx context.Context, providerID, serviceID string, enabled bool) error {
	return s.Repo.SetServiceEnabled(ctx, providerID, serviceID, enabled)
}
