package handlers

import (
	"net/http"

	apperrors "github.com/binna/binna-backend/errors"
	"github.com/binna/binna-backend/logger"
	"github.com/binna/binna-backend/middleware"
	"github.com/binna/binna-backend/services"
	"github.com/binna/binna-backend/types"
	"github.com/gin-gonic/gin"
)

// invoiceFormField is the multipart field carrying the PDF.
const invoiceFormField = "file"

type InvoiceHandler struct {
	invoiceService InvoiceServiceInterface
}

func NewInvoiceHandler(invoiceService InvoiceServiceInterface) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// UploadInvoice godoc
// @Summary Upload the invoice of an order
// @Description PDF only, at most 10 MiB, one invoice per order
// @Tags store
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Order ID"
// @Param file formData file true "Invoice PDF"
// @Success 201 {object} types.Invoice
// @Failure 400 {object} types.ErrorResponse "Missing, oversized or non-PDF file"
// @Failure 403 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse "Order already invoiced"
// @Failure 503 {object} types.ErrorResponse "File storage disabled"
// @Router /store/orders/{id}/invoice [post]
// @Security BearerAuth
func (h *InvoiceHandler) UploadInvoice(c *gin.Context) {
	header, err := c.FormFile(invoiceFormField)
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invoice file is required", err.Error()))
		return
	}

	file, err := header.Open()
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invoice file could not be read", err.Error()))
		return
	}
	defer file.Close()

	invoice, err := h.invoiceService.Upload(c.Request.Context(), middleware.GetStoreID(c), c.Param("id"), services.InvoiceUpload{
		Filename: header.Filename,
		Body:     file,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	logger.GetLogger().Infow("Invoice uploaded", "invoiceID", invoice.ID, "orderID", invoice.OrderID, "size", invoice.FileSize)
	c.JSON(http.StatusCreated, invoice)
}

// ListInvoices godoc
// @Summary List my invoices
// @Tags invoices
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} types.PaginatedResponse
// @Router /invoices [get]
// @Security BearerAuth
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	var page types.Page
	if !bindQueryOrError(c, &page) {
		return
	}

	invoices, total, err := h.invoiceService.ListUserInvoices(c.Request.Context(), getUserIDFromContext(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, paginated(invoices, page, total))
}

// GetInvoice godoc
// @Summary Get an invoice
// @Description Visible to the buyer and to the issuing store; includes a short-lived download URL
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} types.Invoice
// @Failure 404 {object} types.ErrorResponse
// @Router /invoices/{id} [get]
// @Security BearerAuth
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	viewer := services.InvoiceViewer{
		UserID:  getUserIDFromContext(c),
		StoreID: middleware.GetStoreID(c),
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
