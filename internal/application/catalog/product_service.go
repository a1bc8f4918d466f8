package catalog

import (
	"context"
	"fmt"

	"github.com/agencydesk/backend/internal/domain/audit"
	"github.com/agencydesk/backend/internal/domain/catalog"
	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name     string
	Unit     string
	Quantity int
	Price    decimal.Decimal
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name     *string
	Unit     *string
	Price    *decimal.Decimal
	Quantity *int
}

// ProductListFilter holds list query options for products
type ProductListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// ProductService handles product catalog operations. Every mutation writes
// one audit log entry describing the field changes; no-op updates write none.
type ProductService struct {
	productRepo catalog.ProductRepository
	unitRepo    catalog.UnitRepository
	auditLog    audit.Recorder
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, unitRepo catalog.UnitRepository, auditLog audit.Recorder, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo: productRepo,
		unitRepo:    unitRepo,
		auditLog:    auditLog,
		logger:      logger,
	}
}

// Create creates a new product and records an audit entry
func (s *ProductService) Create(ctx context.Context, actorID uint, req CreateProductRequest) (*catalog.Product, error) {
	product, err := catalog.NewProduct(req.Name, req.Unit, req.Quantity, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("failed to save product", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save product")
	}

	action := fmt.Sprintf("Product created: %s", product.Name)
	if err := s.auditLog.RecordProduct(ctx, product.ID, actorID, action); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies the changed fields to a product. The audit entry lists
// each field change; when nothing changed, neither a write nor an audit
// entry happens.
func (s *ProductService) Update(ctx context.Context, actorID, productID uint, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var cs audit.ChangeSet
	if req.Name != nil {
		cs.Add("name", product.Name, *req.Name)
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Unit != nil {
		cs.Add("unit", product.Unit, *req.Unit)
		product.Unit = *req.Unit
	}
	if req.Price != nil {
		cs.Add("price", product.Price.String(), req.Price.String())
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Quantity != nil {
		cs.Add("quantity", product.Quantity, *req.Quantity)
		product.Quantity = *req.Quantity
	}

	if cs.Empty() {
		return product, nil
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.logger.Error("failed to update product", zap.Uint("product_id", productID), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save product")
	}

	if err := s.auditLog.RecordProduct(ctx, product.ID, actorID, cs.Describe()); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and records an audit entry
func (s *ProductService) Delete(ctx context.Context, actorID, productID uint) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return shared.NewDomainError(shared.CodePersistence, "Failed to delete product")
	}

	action := fmt.Sprintf("Product deleted: %s", product.Name)
	return s.auditLog.RecordProduct(ctx, productID, actorID, action)
}

// AdjustStock applies a signed stock delta for the given operation type.
// The adjustment is a single atomic increment at the storage layer.
func (s *ProductService) AdjustStock(ctx context.Context, actorID, productID uint, quantity int, operation catalog.StockOperation) error {
	if quantity <= 0 {
		return shared.NewDomainError(shared.CodeValidation, "Quantity must be a positive integer")
	}
	if !operation.IsValid() {
		return shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Unknown stock operation %q", operation))
	}

	delta := operation.Delta(quantity)
	if err := s.productRepo.AdjustStock(ctx, productID, delta); err != nil {
		s.logger.Error("stock adjustment failed",
			zap.Uint("product_id", productID),
			zap.Int("delta", delta),
			zap.Error(err))
		return err
	}

	action := fmt.Sprintf("Stock adjusted by %+d (%s)", delta, operation)
	return s.auditLog.RecordProduct(ctx, productID, actorID, action)
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uint) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]catalog.Product, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Units returns the available measurement units
func (s *ProductService) Units(ctx context.Context) ([]catalog.Unit, error) {
	return s.unitRepo.FindAll(ctx)
}

// Logs returns the audit trail of a product
func (s *ProductService) Logs(ctx context.Context, productID uint) ([]audit.ProductLog, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.auditLog.ListProductLogs(ctx, productID)
}
