package productRepo

import (
	"context"
	"errors"

	"residora/models"
)

// ErrProductNotFound is returned when no product matches the given identifier.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines data access for provider product listings.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetManyByIDs returns the products matching ids; missing ids are simply
	// absent from the result, callers decide whether that's an error.
	GetManyByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
