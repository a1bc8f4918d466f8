package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/agencydesk/backend/internal/application/partner"
	"github.com/agencydesk/backend/internal/interfaces/http/dto"
	"github.com/agencydesk/backend/internal/interfaces/http/middleware"
)

// CustomerHandler handles customer registry requests
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CustomerBody represents a customer create/update request body
type CustomerBody struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Aadhaar string `json:"aadhaar,omitempty" binding:"omitempty,max=20"`
	Address string `json:"address,omitempty" binding:"omitempty,max=500"`
}

func (b CustomerBody) toInput() partnerapp.CustomerInput {
	return partnerapp.CustomerInput{
		Name:    b.Name,
		Phone:   b.Phone,
		Aadhaar: b.Aadhaar,
		Address: b.Address,
	}
}

// Create registers a new customer
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var body CustomerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid customer payload: "+middleware.DescribeValidationError(err))
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), middleware.GetSessionUserID(c), body.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// List returns customers matching the query filters
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+middleware.DescribeValidationError(err))
		return
	}
	query.Normalize()

	customers, err := h.customerService.List(c.Request.Context(), partnerapp.ListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customers)
}

// Get returns a single customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Update modifies a customer's details
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var body CustomerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid customer payload: "+middleware.DescribeValidationError(err))
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), middleware.GetSessionUserID(c), req.ID, body.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete removes a customer
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), middleware.GetSessionUserID(c), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Logs returns the audit trail for a customer
// GET /api/v1/customers/:id/logs
func (h *CustomerHandler) Logs(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	logs, err := h.customerService.Logs(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}
