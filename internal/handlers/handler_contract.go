package handlers

import (
	"net/http"

	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type contractHandler struct {
	contractService     portssvc.ContractSvcFacade
	notificationService portssvc.NotificationLogSvc
	publicURL           string
}

func newContractHandler(services *portssvc.ServiceContainer, publicURL string) *contractHandler {
	return &contractHandler{
		contractService:     services.Contract,
		notificationService: services.Notification,
		publicURL:           publicURL,
	}
}

// registerContractRoutes registers routes related to contracts.
func registerContractRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, publicURL string) {
	h := newContractHandler(services, publicURL)
	contracts := rg.Group("/contracts")
	{
		contracts.GET("", h.listContracts)
		contracts.POST("", h.createContract)
		contracts.GET("/:contractID", h.getContract)
		contracts.PUT("/:contractID", h.updateContract)
		contracts.DELETE("/:contractID", h.deleteContract)
		contracts.POST("/:contractID/send", h.sendContract)
		contracts.POST("/:contractID/duplicate", h.duplicateContract)
		contracts.GET("/:contractID/share-link", h.shareLink)
		contracts.GET("/:contractID/notifications", h.listNotifications)
	}
}

// listContracts godoc
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Param status query string false "Contract status"
// @Param search query string false "Title or client fragment"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListContractsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/contracts [get]
// @Security BearerAuth
func (h *contractHandler) listContracts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	contracts, nextToken, err := h.contractService.ListContracts(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Contract", "Failed to list contracts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListContractsResponse(contracts, nextToken, h.publicURL))
}

// createContract godoc
// @Summary Create a contract
// @Description Saves a draft, or with status "sent" sends it to the client right away.
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body dto.ContractRequest true "Contract form"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/contracts [post]
// @Security BearerAuth
func (h *contractHandler) createContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	contract, err := h.contractService.CreateContract(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Contract", "Failed to save contract")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContractResponse(contract, h.publicURL))
}

// getContract godoc
// @Summary Get a contract
// @Tags contracts
// @Produce json
// @Param contractID path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contracts/{contractID} [get]
// @Security BearerAuth
func (h *contractHandler) getContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	contract, err := h.contractService.GetContract(c.Request.Context(), userID, c.Param("contractID"))
	if err != nil {
		respondError(c, err, "Contract", "Failed to retrieve contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract, h.publicURL))
}

// updateContract godoc
// @Summary Update a contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param contractID path string true "Contract ID"
// @Param contract body dto.ContractRequest true "Contract form"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/contracts/{contractID} [put]
// @Security BearerAuth
func (h *contractHandler) updateContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	contract, err := h.contractService.UpdateContract(c.Request.Context(), userID, c.Param("contractID"), req)
	if err != nil {
		respondError(c, err, "Contract", "Failed to save contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract, h.publicURL))
}

// deleteContract godoc
// @Summary Delete a contract
// @Tags contracts
// @Param contractID path string true "Contract ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contracts/{contractID} [delete]
// @Security BearerAuth
func (h *contractHandler) deleteContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.contractService.DeleteContract(c.Request.Context(), userID, c.Param("contractID")); err != nil {
		respondError(c, err, "Contract", "Failed to delete contract")
		return
	}
	c.Status(http.StatusNoContent)
}

// sendContract godoc
// @Summary Send a contract
// @Description Marks the contract sent and emails the client the share link.
// @Tags contracts
// @Produce json
// @Param contractID path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse "Client email missing"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/contracts/{contractID}/send [post]
// @Security BearerAuth
func (h *contractHandler) sendContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	contract, err := h.contractService.SendContract(c.Request.Context(), userID, c.Param("contractID"))
	if err != nil {
		respondError(c, err, "Contract", "Failed to send contract")
		return
	}
	c.JSON(http.StatusOK, dto.ToContractResponse(contract, h.publicURL))
}

// duplicateContract godoc
// @Summary Duplicate a contract
// @Tags contracts
// @Produce json
// @Param contractID path string true "Contract ID"
// @Success 201 {object} dto.ContractResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contracts/{contractID}/duplicate [post]
// @Security BearerAuth
func (h *contractHandler) duplicateContract(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	contract, err := h.contractService.DuplicateContract(c.Request.Context(), userID, c.Param("contractID"))
	if err != nil {
		respondError(c, err, "Contract", "Failed to duplicate contract")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContractResponse(contract, h.publicURL))
}

// shareLink godoc
// @Summary Get the public link of a contract
// @Tags contracts
// @Produce json
// @Param contractID path string true "Contract ID"
// @Success 200 {object} dto.ShareLinkResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contracts/{contractID}/share-link [get]
// @Security BearerAuth
func (h *contractHandler) shareLink(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	url, err := h.contractService.ShareLink(c.Request.Context(), userID, c.Param("contractID"))
	if err != nil {
		respondError(c, err, "Contract", "Failed to build share link")
		return
	}
	c.JSON(http.StatusOK, dto.ShareLinkResponse{URL: url})
}

// listNotifications godoc
// @Summary List the email log of a contract
// @Tags contracts
// @Produce json
// @Param contractID path string true "Contract ID"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contracts/{contractID}/notifications [get]
// @Security BearerAuth
func (h *contractHandler) listNotifications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	records, err := h.notificationService.ListNotifications(c.Request.Context(), userID, c.Param("contractID"))
	if err != nil {
		respondError(c, err, "Contract", "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(records))
}
