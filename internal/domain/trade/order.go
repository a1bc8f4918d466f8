package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/agencydesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderType distinguishes sales from purchases
type OrderType string

const (
	OrderTypeSale     OrderType = "sale"
	OrderTypePurchase OrderType = "purchase"
)

// IsValid checks if the type is a known OrderType
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeSale, OrderTypePurchase:
		return true
	}
	return false
}

// String returns the string representation of OrderType
func (t OrderType) String() string {
	return string(t)
}

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusTrashed   OrderStatus = "trashed"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusCancelled, OrderStatusTrashed:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancelled and trashed are terminal; repeating a transition is not allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusCreated:
		return target == OrderStatusCancelled || target == OrderStatusTrashed
	case OrderStatusCancelled, OrderStatusTrashed:
		return false
	}
	return false
}

// ParseOrderStatus maps user-supplied status names to an OrderStatus.
// Short forms used by the UI ("cancel", "trash") are accepted.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "created":
		return OrderStatusCreated, nil
	case "cancel", "cancelled":
		return OrderStatusCancelled, nil
	case "trash", "trashed":
		return OrderStatusTrashed, nil
	}
	return "", shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Unknown order status %q", raw))
}

// OrderItem represents a line item within an order.
// Items have no lifecycle of their own; the order owns them exclusively.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint            `gorm:"index;not null" json:"order_id"`
	ProductID   uint            `gorm:"not null" json:"product_id"`
	ProductName string          `gorm:"size:200;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewOrderItem creates a new order line item
func NewOrderItem(productID uint, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Quantity must be a positive integer")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidation, "Unit price cannot be negative")
	}

	return &OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

// Subtotal returns quantity x unit price
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a sale or purchase transaction with line items,
// discount and payment tracking. It is the aggregate root; monetary
// fields are kept consistent through ComputeTotals.
type Order struct {
	shared.BaseEntity
	Type            OrderType       `gorm:"size:16;not null;index" json:"type"`
	CustomerID      *uint           `gorm:"index" json:"customer_id,omitempty"`
	VendorID        *uint           `gorm:"index" json:"vendor_id,omitempty"`
	PartyName       string          `gorm:"size:200" json:"party_name"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	DiscountType    DiscountType    `gorm:"size:16;not null;default:flat" json:"discount_type"`
	DiscountValue   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"discount_value"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_price"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	TotalPayable    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_payable"`
	PaidAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"remaining_amount"`
	PaymentMethod   string          `gorm:"size:50" json:"payment_method"`
	PaymentStatus   PaymentStatus   `gorm:"size:20" json:"payment_status"`
	Status          OrderStatus     `gorm:"size:20;not null;index" json:"status"`
	Remarks         string          `gorm:"size:500" json:"remarks"`
	DocumentKey     string          `gorm:"size:500" json:"-"`
	DocumentURL     string          `gorm:"size:500" json:"document_url,omitempty"`
}

// TableName overrides the gorm table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in the created status. The cart must not be
// empty; all monetary fields are computed from the items and discount.
func NewOrder(orderType OrderType, items []OrderItem, discountType DiscountType, discountValue, paid decimal.Decimal, paymentMethod string) (*Order, error) {
	if !orderType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Unknown order type %q", orderType))
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Order must contain at least one item")
	}
	if !discountType.IsValid() {
		discountType = DiscountTypeFlat
	}

	totals := ComputeTotals(items, discountType, discountValue, paid)

	order := &Order{
		Type:            orderType,
		Items:           items,
		DiscountType:    discountType,
		DiscountValue:   clampDiscountValue(discountValue),
		TotalPrice:      totals.TotalPrice,
		DiscountAmount:  totals.DiscountAmount,
		TotalPayable:    totals.TotalPayable,
		PaidAmount:      totals.PaidAmount,
		RemainingAmount: totals.RemainingAmount,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   DerivePaymentStatus(totals.PaidAmount, totals.TotalPayable, paymentMethod),
		Status:          OrderStatusCreated,
	}
	return order, nil
}

// ForCustomer attaches a customer reference to a sale order
func (o *Order) ForCustomer(customerID uint, name string) {
	o.CustomerID = &customerID
	o.PartyName = name
}

// ForVendor attaches a vendor reference to a purchase order
func (o *Order) ForVendor(vendorID uint, name string) {
	o.VendorID = &vendorID
	o.PartyName = name
}

// AttachDocument replaces the stored document reference and returns the
// storage key of the previous document, empty if none was attached.
func (o *Order) AttachDocument(key, url string) string {
	prev := o.DocumentKey
	o.DocumentKey = key
	o.DocumentURL = url
	o.UpdatedAt = time.Now()
	return prev
}

// SetRemarks sets the order remarks
func (o *Order) SetRemarks(remarks string) {
	o.Remarks = remarks
}

// ChangeStatus transitions the order to the target status. It returns a
// human-readable description of the transition for the audit log, or an
// INVALID_TRANSITION error when the target is not reachable from the
// current status. Repeating an already-applied transition is rejected.
func (o *Order) ChangeStatus(target OrderStatus) (string, error) {
	if !target.IsValid() {
		return "", shared.NewDomainError(shared.CodeValidation, fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return "", shared.NewDomainError(shared.CodeInvalidTransition,
			fmt.Sprintf("Cannot change status from %s to %s", o.Status, target))
	}

	description := fmt.Sprintf("Status changed from %s to %s", o.Status, target)
	o.Status = target
	o.UpdatedAt = time.Now()
	return description, nil
}

// ApplyPayment records an additional payment against the order and
// recomputes the remaining amount and payment status.
func (o *Order) ApplyPayment(amount decimal.Decimal, method string) error {
	if amount.IsNegative() {
		return shared.NewDomainError(shared.CodeValidation, "Payment amount cannot be negative")
	}
	if o.Status != OrderStatusCreated {
		return shared.NewDomainError(shared.CodeInvalidTransition,
			fmt.Sprintf("Cannot record payment on a %s order", o.Status))
	}

	o.PaidAmount = o.PaidAmount.Add(amount)
	if method != "" {
		o.PaymentMethod = method
	}
	remaining := o.TotalPayable.Sub(o.PaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	o.RemainingAmount = remaining
	o.PaymentStatus = DerivePaymentStatus(o.PaidAmount, o.TotalPayable, o.PaymentMethod)
	o.UpdatedAt = time.Now()
	return nil
}

// IsTerminal returns true if the order is cancelled or trashed
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusTrashed
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}
