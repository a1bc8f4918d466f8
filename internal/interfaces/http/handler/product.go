package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogapp "github.com/agencydesk/backend/internal/application/catalog"
	"github.com/agencydesk/backend/internal/domain/catalog"
	"github.com/agencydesk/backend/internal/interfaces/http/dto"
	"github.com/agencydesk/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog requests
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductBody represents the create-product request body
type CreateProductBody struct {
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	Unit     string  `json:"unit" binding:"required"`
	Quantity int     `json:"quantity" binding:"gte=0"`
	Price    float64 `json:"price" binding:"gte=0"`
}

// UpdateProductBody represents the update-product request body.
// Absent fields are left unchanged.
type UpdateProductBody struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Unit     *string  `json:"unit,omitempty"`
	Price    *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Quantity *int     `json:"quantity,omitempty" binding:"omitempty,gte=0"`
}

// AdjustStockBody represents a stock adjustment request body
type AdjustStockBody struct {
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Operation string `json:"operation" binding:"required,oneof=sale purchase"`
}

// Create creates a new product
// POST /api/v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var body CreateProductBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid product payload: "+middleware.DescribeValidationError(err))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), middleware.GetSessionUserID(c), catalogapp.CreateProductRequest{
		Name:     body.Name,
		Unit:     body.Unit,
		Quantity: body.Quantity,
		Price:    decimal.NewFromFloat(body.Price),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// List returns products matching the query filters
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	var query dto.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+middleware.DescribeValidationError(err))
		return
	}
	query.Normalize()

	products, total, err := h.productService.List(c.Request.Context(), catalogapp.ProductListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, query.Page, query.PageSize)
}

// Get returns a single product
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Update modifies a product's details
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var body UpdateProductBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid product payload: "+middleware.DescribeValidationError(err))
		return
	}

	update := catalogapp.UpdateProductRequest{
		Name:     body.Name,
		Unit:     body.Unit,
		Quantity: body.Quantity,
	}
	if body.Price != nil {
		price := decimal.NewFromFloat(*body.Price)
		update.Price = &price
	}

	product, err := h.productService.Update(c.Request.Context(), middleware.GetSessionUserID(c), req.ID, update)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes a product
// DELETE /api/v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), middleware.GetSessionUserID(c), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AdjustStock applies a manual stock adjustment
// POST /api/v1/products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var body AdjustStockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Quantity and operation are required")
		return
	}

	err := h.productService.AdjustStock(
		c.Request.Context(),
		middleware.GetSessionUserID(c),
		req.ID,
		body.Quantity,
		catalog.StockOperation(body.Operation),
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Units returns the available measurement units
// GET /api/v1/products/units
func (h *ProductHandler) Units(c *gin.Context) {
	units, err := h.productService.Units(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, units)
}

// Logs returns the audit trail for a product
// GET /api/v1/products/:id/logs
func (h *ProductHandler) Logs(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	logs, err := h.productService.Logs(c.Request.Context(), req.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, logs)
}
