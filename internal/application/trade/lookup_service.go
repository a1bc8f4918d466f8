package trade

import (
	"context"

	"github.com/agencydesk/backend/internal/domain/trade"
)

// LookupService serves the payment method options offered to clients
type LookupService struct {
	options trade.PaymentOptionRepository
}

// NewLookupService creates a new LookupService
func NewLookupService(options trade.PaymentOptionRepository) *LookupService {
	return &LookupService{options: options}
}

// PaymentMethods returns the names of the seeded payment methods
func (s *LookupService) PaymentMethods(ctx context.Context) ([]string, error) {
	options, err := s.options.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(options))
	for _, o := range options {
		names = append(names, o.Name)
	}
	return names, nil
}
