package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/agencydesk/backend/internal/application/partner"
	"github.com/agencydesk/backend/internal/interfaces/http/dto"
	"github.com/agencydesk/backend/internal/interfaces/http/middleware"
)

// VendorHandler handles vendor registry requests
type VendorHandler struct {
	BaseHandler
	vendorService *partnerapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(vendorService *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// VendorBody represents a vendor create/update request body
type VendorBody struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Phone    string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Aadhaar  string `json:"aadhaar,omitempty" binding:"omitempty,max=20"`
	Address  string `json:"address,omitempty" binding:"omitempty,max=500"`
	Products string `json:"products,omitempty" binding:"omitempty,max=500"`
}

func (b VendorBody) toInput() partnerapp.VendorInput {
	return partnerapp.VendorInput{
		Name:     b.Name,
		Phone:    b.Phone,
		Aadhaar:  b.Aadhaar,
		Address:  b.Address,
		Products: b.Products,
	}
}

// Create registers a new vendor
// POST /api/v1/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var body VendorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid vendor payload: "+middleware.DescribeValidationError(err))
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), middleware.GetSessionUserID(c), body.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, vendor)
}

// List returns vendors matching the query filters
// GET /api/v1/vendors
func (h *VendorHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+middleware.DescribeValidationError(err))
		return
	}
	query.Normalize()

	vendors, err := h.vendorService.List(c.Request.Context(), partnerapp.ListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendors)
}

// Get returns a single vendor
// GET /api/v1/vendors/:id
func (h *VendorHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// Update modifies a vendor's details
// PUT /api/v1/vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	var body VendorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid vendor payload: "+middleware.DescribeValidationError(err))
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), middleware.GetSessionUserID(c), req.ID, body.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// Delete removes a vendor
// DELETE /api/v1/vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), middleware.GetSessionUserID(c), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Logs returns the audit trail for a vendor
// GET /api/v1/vendors/:id/logs
func (h *VendorHandler) Logs(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	logs, err := h.vendorService.Logs(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}
