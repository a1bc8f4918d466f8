package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	tradeapp "github.com/agencydesk/backend/internal/application/trade"
	"github.com/agencydesk/backend/internal/interfaces/http/dto"
	"github.com/agencydesk/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order lifecycle requests
type OrderHandler struct {
	BaseHandler
	orderService  *tradeapp.OrderService
	lookupService *tradeapp.LookupService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService, lookupService *tradeapp.LookupService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		lookupService: lookupService,
	}
}

// PlaceOrderItem represents one cart line in the request body
type PlaceOrderItem struct {
	ProductID uint     `json:"product_id" binding:"required,min=1"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	UnitPrice *float64 `json:"unit_price,omitempty" binding:"omitempty,gte=0"`
}

// PlaceOrderBody represents the place-order request body
type PlaceOrderBody struct {
	Type          string           `json:"type" binding:"required,oneof=sale purchase"`
	CustomerID    *uint            `json:"customer_id,omitempty"`
	VendorID      *uint            `json:"vendor_id,omitempty"`
	Items         []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
	DiscountType  string           `json:"discount_type,omitempty" binding:"omitempty,oneof=flat percentage"`
	DiscountValue float64          `json:"discount_value,omitempty" binding:"omitempty,gte=0"`
	PaidAmount    float64          `json:"paid_amount,omitempty" binding:"omitempty,gte=0"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Remarks       string           `json:"remarks,omitempty" binding:"omitempty,max=500"`
}

// ChangeStatusBody represents a status transition request body
type ChangeStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// RecordPaymentBody represents an additional payment request body
type RecordPaymentBody struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method,omitempty"`
}

// OrderListQuery holds list query parameters for orders
type OrderListQuery struct {
	dto.ListRequest
	Type   string `form:"type" binding:"omitempty,oneof=sale purchase"`
	Status string `form:"status"`
}

// Place creates a sale or purchase order
// POST /api/v1/orders
func (h *OrderHandler) Place(c *gin.Context) {
	var body PlaceOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid order payload: "+middleware.DescribeValidationError(err))
		return
	}

	req := tradeapp.PlaceOrderRequest{
		Type:          body.Type,
		CustomerID:    body.CustomerID,
		VendorID:      body.VendorID,
		DiscountType:  body.DiscountType,
		DiscountValue: decimal.NewFromFloat(body.DiscountValue),
		PaidAmount:    decimal.NewFromFloat(body.PaidAmount),
		PaymentMethod: body.PaymentMethod,
		Remarks:       body.Remarks,
	}
	for _, item := range body.Items {
		input := tradeapp.PlaceOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.UnitPrice != nil {
			price := decimal.NewFromFloat(*item.UnitPrice)
			input.UnitPrice = &price
		}
		req.Items = append(req.Items, input)
	}

	order, err := h.orderService.Place(c.Request.Context(), middleware.GetSessionUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns orders matching the query filters
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	var query OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+middleware.DescribeValidationError(err))
		return
	}
	query.Normalize()

	orders, total, err := h.orderService.List(c.Request.Context(), tradeapp.OrderListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Type:     query.Type,
		Status:   query.Status,
		Search:   query.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, query.Page, query.PageSize)
}

// Get returns a single order with its items
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ChangeStatus moves an order to a new lifecycle status
// PATCH /api/v1/orders/:id/status
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var body ChangeStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Status is required")
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), middleware.GetSessionUserID(c), req.ID, body.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RecordPayment records an additional payment against an order
// POST /api/v1/orders/:id/payments
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var body RecordPaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "A positive payment amount is required")
		return
	}

	order, err := h.orderService.RecordPayment(c.Request.Context(), middleware.GetSessionUserID(c), req.ID, tradeapp.RecordPaymentRequest{
		Amount: decimal.NewFromFloat(body.Amount),
		Method: body.Method,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Logs returns the audit trail for an order
// GET /api/v1/orders/:id/logs
func (h *OrderHandler) Logs(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	logs, err := h.orderService.Logs(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}

// PaymentMethods returns the selectable payment method names
// GET /api/v1/orders/payment-methods
func (h *OrderHandler) PaymentMethods(c *gin.Context) {
	methods, err := h.lookupService.PaymentMethods(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, methods)
}
