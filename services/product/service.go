package product

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	productRepo "residora/database/repository/product"
	providerRepo "residora/database/repository/provider"
	"residora/models"
	"residora/services/payment"
	"residora/services/scheduling"
	"residora/utils"
)

// ProductService manages provider product listings and product checkout.
type ProductService interface {
	CreateProduct(ctx context.Context, providerID string, product models.Product) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, providerID string, product models.Product) error
	DeleteProduct(ctx context.Context, providerID, productID string) error
	Checkout(ctx context.Context, customerID string, req models.ProductCheckoutRequest) (*payment.CheckoutSession, error)
}

// DefaultProductService implements ProductService.
type DefaultProductService struct {
	Repo      productRepo.ProductRepository
	Providers providerRepo.ProviderRepository
	Payments  payment.Handler

	SuccessURL string
	CancelURL  string
}

var _ ProductService = (*DefaultProductService)(nil)

func (s *DefaultProductService) CreateProduct(ctx context.Context, providerID string, product models.Product) (*models.Product, error) {
	if product.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if product.Price <= 0 {
		return nil, fmt.Errorf("product price must be positive")
	}

	now := time.Now().UTC()
	product.ID = uuid.NewString()
	product.ProviderID = providerID
	product.Enabled = true
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.Repo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *DefaultProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultProductService) ListByProvider(ctx context.Context, providerID string) ([]models.Product, error) {
	return s.Repo.ListByProvider(ctx, providerID)
}

// UpdateProduct replaces a listing. Ownership is checked so providers can
// only edit their own products.
func (s *DefaultProductService) UpdateProduct(ctx context.Context, providerID string, product models.Product) error {
	existing, err := s.Repo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if existing.ProviderID != providerID {
		return scheduling.ErrUnauthorized
	}
	if product.Price <= 0 {
		return fmt.Errorf("product price must be positive")
	}
	product.ProviderID = existing.ProviderID
	product.CreatedAt = existing.CreatedAt
	return s.Repo.Update(ctx, &product)
}

func (s *DefaultProductService) DeleteProduct(ctx context.Context, providerID, productID string) error {
	existing, err := s.Repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if existing.ProviderID != providerID {
		return scheduling.ErrUnauthorized
	}
	return s.Repo.Delete(ctx, productID)
}

// Checkout validates the requested products against the catalogue and opens a
// checkout session for their total. There is no order ledger; the checkout
// session itself is the record of the purchase.
func (s *DefaultProductService) Checkout(ctx context.Context, customerID string, req models.ProductCheckoutRequest) (*payment.CheckoutSession, error) {
	if customerID == "" {
		return nil, scheduling.ErrUnauthorized
	}
	provider, err := s.Providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	products, err := s.Repo.GetManyByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]payment.CheckoutItem, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown product %s", scheduling.ErrInvalidRequest, id)
		}
		if !p.Enabled {
			return nil, fmt.Errorf("%w: product %s is not available", scheduling.ErrInvalidRequest, id)
		}
		if p.ProviderID != req.ProviderID {
			return nil, fmt.Errorf("%w: product %s belongs to a different provider", scheduling.ErrInvalidRequest, id)
		}
		items = append(items, payment.CheckoutItem{Name: p.Name, Amount: p.Price})
	}

	session, err := s.Payments.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ReferenceID:     "products:" + customerID,
		Currency:        provider.Currency,
		Items:           items,
		PayoutAccountID: provider.PayoutAccountID,
		SuccessURL:      s.SuccessURL,
		CancelURL:       s.CancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start product checkout: %w", err)
	}

	utils.GetLogger().Info("product checkout created",
		zap.String("customerID", customerID),
		zap.String("providerID", req.ProviderID),
		zap.Int("items", len(items)),
		zap.Float64("total", session.TotalAmount))
	return session, nil
}
