package handler

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	tradeapp "github.com/agencydesk/backend/internal/application/trade"
	"github.com/agencydesk/backend/internal/interfaces/http/dto"
)

// DocumentHandler handles order document uploads
type DocumentHandler struct {
	BaseHandler
	documentService *tradeapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *tradeapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload attaches a document to an order
// POST /api/v1/orders/:id/documents (multipart form, fields "file" and
// optionally "orderId", which must match the path when present)
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if raw := c.PostForm("orderId"); raw != "" {
		formID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || uint(formID) != req.ID {
			h.BadRequest(c, "Form field orderId does not match the order in the path")
			return
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Uploaded file could not be read")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Uploaded file could not be read")
		return
	}

	result, err := h.documentService.Upload(
		c.Request.Context(),
		req.ID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
