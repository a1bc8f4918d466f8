package partner

import (
	"context"
	"fmt"

	"github.com/agencydesk/backend/internal/domain/audit"
	"github.com/agencydesk/backend/internal/domain/partner"
	"github.com/agencydesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// VendorInput carries vendor details for create/update requests
type VendorInput struct {
	Name     string
	Phone    string
	Aadhaar  string
	Address  string
	Products string
}

// VendorService handles vendor registry operations with audit logging
type VendorService struct {
	vendorRepo partner.VendorRepository
	auditLog   audit.Recorder
	logger     *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, auditLog audit.Recorder, logger *zap.Logger) *VendorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VendorService{
		vendorRepo: vendorRepo,
		auditLog:   auditLog,
		logger:     logger,
	}
}

// Create creates a new vendor and records an audit entry
func (s *VendorService) Create(ctx context.Context, actorID uint, req VendorInput) (*partner.Vendor, error) {
	vendor, err := partner.NewVendor(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	vendor.Aadhaar = req.Aadhaar
	vendor.Address = req.Address
	vendor.Products = req.Products

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		s.logger.Error("failed to save vendor", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save vendor")
	}

	action := fmt.Sprintf("Vendor created: %s", vendor.Name)
	if err := s.auditLog.RecordVendor(ctx, vendor.ID, actorID, action); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Update applies new details to a vendor, auditing the field changes
func (s *VendorService) Update(ctx context.Context, actorID, vendorID uint, req VendorInput) (*partner.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	var cs audit.ChangeSet
	cs.Add("name", vendor.Name, req.Name)
	cs.Add("phone", vendor.Phone, req.Phone)
	cs.Add("aadhaar", vendor.Aadhaar, req.Aadhaar)
	cs.Add("address", vendor.Address, req.Address)
	cs.Add("products", vendor.Products, req.Products)

	if cs.Empty() {
		return vendor, nil
	}

	if err := vendor.Update(req.Name, req.Phone, req.Aadhaar, req.Address, req.Products); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		s.logger.Error("failed to update vendor", zap.Uint("vendor_id", vendorID), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save vendor")
	}

	if err := s.auditLog.RecordVendor(ctx, vendor.ID, actorID, cs.Describe()); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Delete removes a vendor and records an audit entry
func (s *VendorService) Delete(ctx context.Context, actorID, vendorID uint) error {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return err
	}

	if err := s.vendorRepo.Delete(ctx, vendorID); err != nil {
		return shared.NewDomainError(shared.CodePersistence, "Failed to delete vendor")
	}

	action := fmt.Sprintf("Vendor deleted: %s", vendor.Name)
	return s.auditLog.RecordVendor(ctx, vendorID, actorID, action)
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, vendorID uint) (*partner.Vendor, error) {
	return s.vendorRepo.FindByID(ctx, vendorID)
}

// List retrieves vendors with filtering and pagination
func (s *VendorService) List(ctx context.Context, filter ListFilter) ([]partner.Vendor, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	return s.vendorRepo.FindAll(ctx, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
	})
}

// Logs returns the audit trail of a vendor
func (s *VendorService) Logs(ctx context.Context, vendorID uint) ([]audit.VendorLog, error) {
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		return nil, err
	}
	return s.auditLog.ListVendorLogs(ctx, vendorID)
}
