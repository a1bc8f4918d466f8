package persistence

import (
	"context"

	"github.com/agencydesk/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPaymentOptionRepository implements PaymentOptionRepository using GORM
type GormPaymentOptionRepository struct {
	db *gorm.DB
}

// NewGormPaymentOptionRepository creates a new GormPaymentOptionRepository
func NewGormPaymentOptionRepository(db *gorm.DB) *GormPaymentOptionRepository {
	return &GormPaymentOptionRepository{db: db}
}

// FindAll returns all payment methods ordered by name
func (r *GormPaymentOptionRepository) FindAll(ctx context.Context) ([]trade.PaymentOption, error) {
	var options []trade.PaymentOption
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// EnsureExists creates the payment method if it is not present yet
func (r *GormPaymentOptionRepository) EnsureExists(ctx context.Context, name string) error {
	option := trade.PaymentOption{Name: name}
	return r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&option).Error
}

// Ensure GormPaymentOptionRepository implements PaymentOptionRepository
var _ trade.PaymentOptionRepository = (*GormPaymentOptionRepository)(nil)
