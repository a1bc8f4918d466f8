package partner

import (
	"context"

	"github.com/agencydesk/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Delete(ctx context.Context, id uint) error
}

// VendorRepository defines persistence operations for vendors
type VendorRepository interface {
	Save(ctx context.Context, vendor *Vendor) error
	FindByID(ctx context.Context, id uint) (*Vendor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)
	Delete(ctx context.Context, id uint) error
}
