package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles the owner side of invoices: the issuer form, the list and per-invoice history.
type invoiceHandler struct {
	invoiceService      portssvc.InvoiceSvcFacade
	paymentService      portssvc.PaymentReaderSvc
	notificationService portssvc.NotificationLogSvc
	publicURL           string
}

func newInvoiceHandler(services *portssvc.ServiceContainer, publicURL string) *invoiceHandler {
	return &invoiceHandler{
		invoiceService:      services.Invoice,
		paymentService:      services.Payment,
		notificationService: services.Notification,
		publicURL:           publicURL,
	}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, publicURL string) {
	h := newInvoiceHandler(services, publicURL)
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.createInvoice)
		invoices.POST("/overdue/refresh", h.refreshOverdue)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
		invoices.POST("/:invoiceID/send", h.sendInvoice)
		invoices.POST("/:invoiceID/duplicate", h.duplicateInvoice)
		invoices.GET("/:invoiceID/share-link", h.shareLink)
		invoices.GET("/:invoiceID/payments", h.listPayments)
		invoices.GET("/:invoiceID/notifications", h.listNotifications)
	}
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists the owner's invoices newest first, with optional status filter and search on number or client.
// @Tags invoices
// @Produce json
// @Param status query string false "Invoice status"
// @Param search query string false "Invoice number or client name/email fragment"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/invoices [get]
// @Security BearerAuth
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Invoice", "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoicesResponse(invoices, nextToken, h.publicURL))
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Saves a draft, or with status "pending" sends it to the client right away.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.InvoiceRequest true "Invoice form"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/invoices [post]
// @Security BearerAuth
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Invoice", "Failed to save invoice")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID), slog.String("status", string(invoice.Status)))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, h.publicURL))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID} [get]
// @Security BearerAuth
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.publicURL))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Replaces the editable fields of a draft or pending invoice. Status "pending" sends a draft.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param invoice body dto.InvoiceRequest true "Invoice form"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID} [put]
// @Security BearerAuth
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), userID, c.Param("invoiceID"), req)
	if err != nil {
		respondError(c, err, "Invoice", "Failed to save invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.publicURL))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Tags invoices
// @Param invoiceID path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID} [delete]
// @Security BearerAuth
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), userID, c.Param("invoiceID")); err != nil {
		respondError(c, err, "Invoice", "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// sendInvoice godoc
// @Summary Send an invoice
// @Description Moves a draft to pending and emails the client the share link. Sending a pending invoice again re-sends the email.
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Client email missing"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID}/send [post]
// @Security BearerAuth
func (h *invoiceHandler) sendInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.SendInvoice(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to send invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.publicURL))
}

// duplicateInvoice godoc
// @Summary Duplicate an invoice
// @Description Copies the invoice into a new draft with a fresh number and share token.
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID}/duplicate [post]
// @Security BearerAuth
func (h *invoiceHandler) duplicateInvoice(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invoice, err := h.invoiceService.DuplicateInvoice(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to duplicate invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, h.publicURL))
}

// shareLink godoc
// @Summary Get the public link of an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.ShareLinkResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID}/share-link [get]
// @Security BearerAuth
func (h *invoiceHandler) shareLink(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	url, err := h.invoiceService.ShareLink(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to build share link")
		return
	}
	c.JSON(http.StatusOK, dto.ShareLinkResponse{URL: url})
}

// listPayments godoc
// @Summary List payment attempts of an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID}/payments [get]
// @Security BearerAuth
func (h *invoiceHandler) listPayments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	payments, err := h.paymentService.ListPayments(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}

// listNotifications godoc
// @Summary List the email log of an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/invoices/{invoiceID}/notifications [get]
// @Security BearerAuth
func (h *invoiceHandler) listNotifications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	records, err := h.notificationService.ListNotifications(c.Request.Context(), userID, c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(records))
}

// refreshOverdue godoc
// @Summary Mark overdue invoices
// @Description Flips the owner's pending and approved invoices whose due date has passed to overdue.
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.OverdueRefreshResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/invoices/overdue/refresh [post]
// @Security BearerAuth
func (h *invoiceHandler) refreshOverdue(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	updated, err := h.invoiceService.MarkOverdue(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Invoice", "Failed to refresh overdue invoices")
		return
	}
	c.JSON(http.StatusOK, dto.OverdueRefreshResponse{Updated: updated})
}
