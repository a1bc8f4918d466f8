package trade

import (
	"context"

	"github.com/agencydesk/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	// Save creates or updates an order together with its line items
	Save(ctx context.Context, order *Order) error

	// FindByID finds an order by ID with its items loaded
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindAll finds orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// UpdateStatus persists a status change as a single column write
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error

	// UpdateDocument persists the stored document reference for an order
	UpdateDocument(ctx context.Context, id uint, key, url string) error
}

// PaymentOptionRepository defines persistence operations for payment methods
type PaymentOptionRepository interface {
	FindAll(ctx context.Context) ([]PaymentOption, error)
	EnsureExists(ctx context.Context, name string) error
}
