package trade

import (
	"context"
	"fmt"

	"github.com/agencydesk/backend/internal/domain/audit"
	"github.com/agencydesk/backend/internal/domain/catalog"
	"github.com/agencydesk/backend/internal/domain/partner"
	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/agencydesk/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderService handles order placement, status changes and payments.
// Every successful mutation writes exactly one audit log entry.
type OrderService struct {
	orderRepo    trade.OrderRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	vendorRepo   partner.VendorRepository
	auditLog     audit.Recorder
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	vendorRepo partner.VendorRepository,
	auditLog audit.Recorder,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// Place validates and persists a new order, adjusts product stock per line
// item and records an audit entry. The order row, the stock adjustments and
// the audit entry are separate writes, not one transaction: a stock or audit
// failure after the order row is written is surfaced to the caller rather
// than rolled back.
func (s *OrderService) Place(ctx context.Context, actorID uint, req PlaceOrderRequest) (*OrderResponse, error) {
	orderType := trade.OrderType(req.Type)
	if !orderType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Unknown order type %q", req.Type))
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Order must contain at least one item")
	}

	items := make([]trade.OrderItem, 0, len(req.Items))
	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice := product.Price
		if input.UnitPrice != nil {
			unitPrice = *input.UnitPrice
		}

		item, err := trade.NewOrderItem(product.ID, product.Name, input.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	order, err := trade.NewOrder(orderType, items, trade.DiscountType(req.DiscountType), req.DiscountValue, req.PaidAmount, req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if err := s.attachParty(ctx, order, req); err != nil {
		return nil, err
	}
	order.SetRemarks(req.Remarks)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("failed to persist order", zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save order")
	}

	operation := catalog.StockOperation(order.Type)
	for _, item := range order.Items {
		if err := s.productRepo.AdjustStock(ctx, item.ProductID, operation.Delta(item.Quantity)); err != nil {
			s.logger.Error("stock adjustment failed",
				zap.Uint("order_id", order.ID),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err))
			return nil, err
		}
	}

	action := fmt.Sprintf("Order created: %s of %d item(s), payable %s", order.Type, order.ItemCount(), order.TotalPayable)
	if err := s.auditLog.RecordOrder(ctx, order.ID, actorID, action); err != nil {
		s.logger.Error("failed to record order audit entry", zap.Uint("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// attachParty resolves and attaches the customer or vendor reference
func (s *OrderService) attachParty(ctx context.Context, order *trade.Order, req PlaceOrderRequest) error {
	switch order.Type {
	case trade.OrderTypeSale:
		if req.CustomerID == nil {
			return nil
		}
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return err
		}
		order.ForCustomer(customer.ID, customer.Name)
	case trade.OrderTypePurchase:
		if req.VendorID == nil {
			return nil
		}
		vendor, err := s.vendorRepo.FindByID(ctx, *req.VendorID)
		if err != nil {
			return err
		}
		order.ForVendor(vendor.ID, vendor.Name)
	}
	return nil
}

// ChangeStatus transitions an order to the target status. The new status is
// persisted before the audit entry is written; a rejected transition or a
// failed persistence write produces no audit entry and no committed change.
func (s *OrderService) ChangeStatus(ctx context.Context, actorID, orderID uint, rawStatus string) (*OrderResponse, error) {
	target, err := trade.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	description, err := order.ChangeStatus(target)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, target); err != nil {
		s.logger.Error("failed to persist status change",
			zap.Uint("order_id", order.ID),
			zap.String("target", target.String()),
			zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to persist status change")
	}

	if err := s.auditLog.RecordOrder(ctx, order.ID, actorID, description); err != nil {
		s.logger.Error("failed to record status audit entry", zap.Uint("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// RecordPayment applies an additional payment to an order, recomputes the
// remaining amount and derived payment status, and audits the field changes.
func (s *OrderService) RecordPayment(ctx context.Context, actorID, orderID uint, req RecordPaymentRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	prevPaid := order.PaidAmount
	prevStatus := order.PaymentStatus
	prevMethod := order.PaymentMethod

	if err := order.ApplyPayment(req.Amount, req.Method); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("failed to persist payment", zap.Uint("order_id", order.ID), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePersistence, "Failed to save payment")
	}

	var cs audit.ChangeSet
	cs.Add("paidAmount", prevPaid.String(), order.PaidAmount.String())
	cs.Add("paymentStatus", prevStatus.String(), order.PaymentStatus.String())
	cs.Add("paymentMethod", prevMethod, order.PaymentMethod)
	if !cs.Empty() {
		if err := s.auditLog.RecordOrder(ctx, order.ID, actorID, cs.Describe()); err != nil {
			s.logger.Error("failed to record payment audit entry", zap.Uint("order_id", order.ID), zap.Error(err))
			return nil, err
		}
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uint) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, total, nil
}

// Logs returns the audit trail of an order
func (s *OrderService) Logs(ctx context.Context, orderID uint) ([]audit.OrderLog, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.auditLog.ListOrderLogs(ctx, orderID)
}
