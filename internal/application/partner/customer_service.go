package partner

import (
	"context"
	"fmt"

	"github.com/agencydesk/backend/internal/domain/audit"
	"github.com/agencydesk/backend/internal/domain/partner"
	"github.com/agencydesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerInput carries customer details for create/update requests
type CustomerInput struct {
	Name    string
	Phone   string
	Aadhaar string
	Address string
}

// ListFilter holds list query options for partners
type ListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// CustomerService handles customer registry operations with audit logging
type CustomerService struct {
	customerRepo partner.CustomerRepository
	auditLog     audit.Recorder
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, auditLog audit.Recorder, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// Create creates a new customer and records an audit entry
func (s *CustomerService) Create(ctx context.Context, actorID uint, req CustomerInput) (*partner.Customer, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	customer.Aadhaar = req.Aadhaar
	customer.Address = req.Address

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("failed to save customer", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save customer")
	}

	action := fmt.Sprintf("Customer created: %s", customer.Name)
	if err := s.auditLog.RecordCustomer(ctx, customer.ID, actorID, action); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update applies new details to a customer, auditing the field changes.
// A no-op update writes nothing.
func (s *CustomerService) Update(ctx context.Context, actorID, customerID uint, req CustomerInput) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var cs audit.ChangeSet
	cs.Add("name", customer.Name, req.Name)
	cs.Add("phone", customer.Phone, req.Phone)
	cs.Add("aadhaar", customer.Aadhaar, req.Aadhaar)
	cs.Add("address", customer.Address, req.Address)

	if cs.Empty() {
		return customer, nil
	}

	if err := customer.Update(req.Name, req.Phone, req.Aadhaar, req.Address); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("failed to update customer", zap.Uint("customer_id", customerID), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save customer")
	}

	if err := s.auditLog.RecordCustomer(ctx, customer.ID, actorID, cs.Describe()); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer and records an audit entry
func (s *CustomerService) Delete(ctx context.Context, actorID, customerID uint) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, customerID); err != nil {
		return shared.NewDomainError(shared.CodePersistence, "Failed to delete customer")
	}

	action := fmt.Sprintf("Customer deleted: %s", customer.Name)
	return s.auditLog.RecordCustomer(ctx, customerID, actorID, action)
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uint) (*partner.Customer, error) {
	return s.customerRepo.FindByID(ctx, customerID)
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter ListFilter) ([]partner.Customer, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	return s.customerRepo.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
	})
}

// Logs returns the audit trail of a customer
func (s *CustomerService) Logs(ctx context.Context, customerID uint) ([]audit.CustomerLog, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.auditLog.ListCustomerLogs(ctx, customerID)
}
