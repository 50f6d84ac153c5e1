package provider

import (
	"context"

	"residora/models"
)

// AuthResponse carries the signed token and account details returned after
// provider signup or signin.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ProviderService manages provider accounts, their service catalogues and
// their recurring weekly availability.
type ProviderService interface {
	Register(ctx context.Context, reg models.ProviderRegistration) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	RevokeAuthToken(ctx context.Context, providerID string) error

	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	ListProviders(ctx context.Context, limit int64) ([]models.Provider, error)
	SetProfileImage(ctx context.Context, providerID, imageURL string) error

	SetAvailability(ctx context.Context, providerID string, req models.SetAvailabilityRequest) (*models.AvailabilityWindow, error)
	RemoveAvailability(ctx context.Context, providerID string, weekday int) error
	ListAvailability(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)

	AddService(ctx context.Context, providerID string, svc models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, providerID string, svc models.Service) error
	SetServiceEnabled(ctx context.Context, providerID, serviceID string, enabled bool) error
}
