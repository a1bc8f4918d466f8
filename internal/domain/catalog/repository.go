package catalog

import (
	"context"

	"github.com/agencydesk/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uint) (*Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Delete removes a product
	Delete(ctx context.Context, id uint) error

	// AdjustStock applies a signed quantity delta to the persisted stock
	// count as a single atomic increment at the storage layer. A failed
	// write leaves the stock untouched and reports INVENTORY_UPDATE_FAILED.
	AdjustStock(ctx context.Context, id uint, delta int) error
}

// UnitRepository defines persistence operations for measurement units
type UnitRepository interface {
	FindAll(ctx context.Context) ([]Unit, error)
	EnsureExists(ctx context.Context, name string) error
}
