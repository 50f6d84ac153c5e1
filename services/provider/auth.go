package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	providerRepo "residora/database/repository/provider"
	"residora/models"
	"residora/utils"
)

const tokenTTL = 24 * time.Hour

// Register creates a provider account in active status with an empty
// catalogue and no availability. Windows and services are added afterwards
// through the management endpoints.
func (s *DefaultProviderService) Register(ctx context.Context, reg models.ProviderRegistration) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(ctx, reg.Email)
	if err != nil && !errors.Is(err, providerRepo.ErrProviderNotFound) {
		utils.GetLogger().Error("Failed to check for existing provider", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a provider with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	currency := reg.Currency
	if currency == "" {
		currency = "usd"
	}

	now := time.Now().UTC()
	provider := models.Provider{
		ID:           uuid.NewString(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: string(hashed),
		Phone:        reg.Phone,
		Status:       "active",
		Currency:     currency,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, &provider); err != nil {
		utils.GetLogger().Error("Failed to create provider", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(ctx, &provider)
}

// Authenticate verifies credentials and rotates the session token.
func (s *DefaultProviderService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	provider, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, providerRepo.ErrProviderNotFound) {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err != nil {
		utils.GetLogger().Error("Failed to fetch provider for authentication", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(provider.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(ctx, provider)
}

func (s *DefaultProviderService) issueToken(ctx context.Context, provider *models.Provider) (*AuthResponse, error) {
	token, err := utils.GenerateToken(provider.ID, provider.Email, utils.RoleProvider, tokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := s.Repo.UpdateTokenHash(ctx, provider.ID, utils.HashToken(token)); err != nil {
		utils.GetLogger().Error("Failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	clearAuthCache(provider.ID)

	return &AuthResponse{
		ID:    provider.ID,
		Token: token,
		Name:  provider.Name,
		Email: provider.Email,
	}, nil
}

// RevokeAuthToken signs the provider out everywhere by clearing the stored hash.
func (s *DefaultProviderService) RevokeAuthToken(ctx context.Context, providerID string) error {
	if err := s.Repo.UpdateTokenHash(ctx, providerID, ""); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return err
		}
		utils.GetLogger().Error("Failed to revoke auth token", zap.String("providerID", providerID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}
	clearAuthCache(providerID)
	return nil
}

func clearAuthCache(subjectID string) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	cacheKey := utils.AuthCachePrefix + subjectID
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Error("Failed to clear auth cache", zap.Error(err))
	}
}
