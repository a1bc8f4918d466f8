package trade

import (
	"time"

	"github.com/agencydesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PlaceOrderItemInput represents one cart line in a place-order request.
// UnitPrice overrides the catalog price when set.
type PlaceOrderItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice *decimal.Decimal
}

// PlaceOrderRequest represents a request to place a sale or purchase order
type PlaceOrderRequest struct {
	Type          string
	CustomerID    *uint
	VendorID      *uint
	Items         []PlaceOrderItemInput
	DiscountType  string
	DiscountValue decimal.Decimal
	PaidAmount    decimal.Decimal
	PaymentMethod string
	Remarks       string
}

// RecordPaymentRequest represents an additional payment against an order
type RecordPaymentRequest struct {
	Amount decimal.Decimal
	Method string
}

// OrderListFilter holds list query options for orders
type OrderListFilter struct {
	Page     int
	PageSize int
	Type     string
	Status   string
	Search   string
}

// OrderItemResponse represents an order line item in responses
type OrderItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID              uint                `json:"id"`
	Type            string              `json:"type"`
	CustomerID      *uint               `json:"customer_id,omitempty"`
	VendorID        *uint               `json:"vendor_id,omitempty"`
	PartyName       string              `json:"party_name,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	DiscountType    string              `json:"discount_type"`
	DiscountValue   float64             `json:"discount_value"`
	TotalPrice      float64             `json:"total_price"`
	DiscountAmount  float64             `json:"discount_amount"`
	TotalPayable    float64             `json:"total_payable"`
	PaidAmount      float64             `json:"paid_amount"`
	RemainingAmount float64             `json:"remaining_amount"`
	PaymentMethod   string              `json:"payment_method,omitempty"`
	PaymentStatus   string              `json:"payment_status,omitempty"`
	Status          string              `json:"status"`
	Remarks         string              `json:"remarks,omitempty"`
	DocumentURL     string              `json:"document_url,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToOrderResponse maps a domain order to its response representation
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			Subtotal:    it.Subtotal().InexactFloat64(),
		})
	}

	return OrderResponse{
		ID:              order.ID,
		Type:            order.Type.String(),
		CustomerID:      order.CustomerID,
		VendorID:        order.VendorID,
		PartyName:       order.PartyName,
		Items:           items,
		DiscountType:    order.DiscountType.String(),
		DiscountValue:   order.DiscountValue.InexactFloat64(),
		TotalPrice:      order.TotalPrice.InexactFloat64(),
		DiscountAmount:  order.DiscountAmount.InexactFloat64(),
		TotalPayable:    order.TotalPayable.InexactFloat64(),
		PaidAmount:      order.PaidAmount.InexactFloat64(),
		RemainingAmount: order.RemainingAmount.InexactFloat64(),
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus.String(),
		Status:          order.Status.String(),
		Remarks:         order.Remarks,
		DocumentURL:     order.DocumentURL,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
