package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// publicHandler serves shared documents to whoever holds the link. A bearer token is
// optional; when present it identifies the owner, who may view but not act.
type publicHandler struct {
	publicService  portssvc.PublicDocumentSvcFacade
	paymentService portssvc.PaymentCaptureSvc
	publicURL      string
}

func newPublicHandler(services *portssvc.ServiceContainer, publicURL string) *publicHandler {
	return &publicHandler{
		publicService:  services.PublicDocument,
		paymentService: services.Payment,
		publicURL:      publicURL,
	}
}

// registerPublicRoutes registers the share-token routes.
func registerPublicRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, publicURL string) {
	h := newPublicHandler(services, publicURL)
	invoices := rg.Group("/invoices/:token")
	{
		invoices.GET("", h.viewInvoice)
		invoices.POST("/approve", h.approveInvoice)
		invoices.POST("/reject", h.rejectInvoice)
		invoices.GET("/payments/checkout", h.checkoutConfig)
		invoices.POST("/payments/success", h.paymentSuccess)
		invoices.POST("/payments/failure", h.paymentFailure)
	}
	contracts := rg.Group("/contracts/:token")
	{
		contracts.GET("", h.viewContract)
		contracts.POST("/accept", h.acceptContract)
		contracts.POST("/reject", h.rejectContract)
	}
}

// viewInvoice godoc
// @Summary View a shared invoice
// @Description Returns the invoice, its sender and which view applies to the caller.
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.PublicInvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Router /public/invoices/{token} [get]
func (h *publicHandler) viewInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.publicService.ViewInvoice(ctx, c.Param("token"), middleware.SessionFromCtx(ctx))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to load invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicInvoiceResponse(doc, h.publicURL))
}

// approveInvoice godoc
// @Summary Approve a shared invoice
// @Description Approves a pending invoice and returns the checkout configuration for paying it.
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.ApproveInvoiceResponse
// @Failure 403 {object} ErrorResponse "Owner cannot approve own invoice"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /public/invoices/{token}/approve [post]
func (h *publicHandler) approveInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	invoice, checkout, err := h.publicService.ApproveInvoice(ctx, c.Param("token"), middleware.SessionFromCtx(ctx))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to approve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ApproveInvoiceResponse{
		Invoice:  dto.ToInvoiceResponse(invoice, h.publicURL),
		Checkout: dto.ToCheckoutResponse(checkout),
	})
}

// rejectInvoice godoc
// @Summary Reject a shared invoice
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param reject body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Reason required"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /public/invoices/{token}/reject [post]
func (h *publicHandler) rejectInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	invoice, err := h.publicService.RejectInvoice(ctx, c.Param("token"), req.Reason, middleware.SessionFromCtx(ctx))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to reject invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, h.publicURL))
}

// checkoutConfig godoc
// @Summary Checkout configuration
// @Description Returns the payment widget configuration for an approved or pending invoice.
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Payments not configured"
// @Router /public/invoices/{token}/payments/checkout [get]
func (h *publicHandler) checkoutConfig(c *gin.Context) {
	details, err := h.paymentService.CheckoutConfig(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err, "Invoice", "Failed to load checkout")
		return
	}
	c.JSON(http.StatusOK, dto.ToCheckoutResponse(details))
}

// paymentSuccess godoc
// @Summary Record a successful payment
// @Description Called by the frontend after the checkout widget reports success. Verifies the signature when an order id is present and marks the invoice paid.
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param payment body dto.PaymentSuccessRequest true "Checkout result"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Signature mismatch"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /public/invoices/{token}/payments/success [post]
func (h *publicHandler) paymentSuccess(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.PaymentSuccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	payment, err := h.paymentService.RecordPaymentSuccess(ctx, c.Param("token"), req)
	if err != nil {
		respondError(c, err, "Invoice", "Failed to record payment")
		return
	}
	middleware.GetLoggerFromCtx(ctx).Info("Payment recorded",
		slog.String("invoice_id", payment.InvoiceID), slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// paymentFailure godoc
// @Summary Record a failed payment attempt
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param payment body dto.PaymentFailureRequest true "Checkout error"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /public/invoices/{token}/payments/failure [post]
func (h *publicHandler) paymentFailure(c *gin.Context) {
	var req dto.PaymentFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	payment, err := h.paymentService.RecordPaymentFailure(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		respondError(c, err, "Invoice", "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// viewContract godoc
// @Summary View a shared contract
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.PublicContractResponse
// @Failure 404 {object} ErrorResponse
// @Router /public/contracts/{token} [get]
func (h *publicHandler) viewContract(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.publicService.ViewContract(ctx, c.Param("token"), middleware.SessionFromCtx(ctx))
	if err != nil {
		respondError(c, err, "Contract", "Failed to load contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicContractResponse(doc, h.publicURL))
}

// acceptContract godoc
// @Summary Accept a shared contract
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param accept body dto.AcceptContractRequest false "Typed signature"
// @Success 200 {object} dto.ContractResponse
// @Failure 403 {object} ErrorResponse "Owner cannot accept own contract"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /public/contracts/{token}/accept [post]
func (h *publicHandler) acceptContract(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.AcceptContractRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
			return
		}
	}
	contract, err := h.publicService.AcceptContract(ctx, c.Param("token"), req.SignatureName, middleware.SessionFromCtx(ctx))
	if err != nil {
		respondError(c, err, "Contract", "Failed to accept contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract, h.publicURL))
}

// rejectContract godoc
// @Summary Reject a shared contract
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param reject body dto.RejectRequest true "Rejection reason"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse "Reason required"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /public/contracts/{token}/reject [post]
func (h *publicHandler) rejectContract(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	contract, err := h.publicService.RejectContract(ctx, c.Param("token"), req.Reason, middleware.SessionFromCtx(ctx))
	if err != nil {
		respondError(c, err, "Contract", "Failed to reject contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract, h.publicURL))
}
