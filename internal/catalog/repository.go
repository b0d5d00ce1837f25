package catalog

import (
	"context"

	"github.com/mobileriadardania/storefront/internal/domain"
)

// ProductRepository persists product documents. Implementations return
// ErrInvalidID and ErrNotFound as described on each method and wrap every
// other failure.
type ProductRepository interface {
	// List returns every product ordered by id, which is creation order.
	List(ctx context.Context) ([]domain.Product, error)
	// Get fails with ErrInvalidID for malformed ids and ErrNotFound when absent.
	Get(ctx context.Context, id string) (domain.Product, error)
	// Create assigns a new id to p and stores it.
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	// Replace overwrites every field of an existing product. A malformed id
	// cannot exist and yields ErrNotFound.
	Replace(ctx context.Context, id string, p domain.Product) (domain.Product, error)
	// Delete removes a product, ErrNotFound when absent or malformed.
	Delete(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Drop(ctx context.Context) error
	Close() error
}
