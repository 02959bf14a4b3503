package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(notificationService portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

// registerNotificationRoutes registers the dispatcher and manual resend routes.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)
	notifications := rg.Group("/notifications")
	{
		notifications.POST("/dispatch", h.dispatch)
		notifications.POST("/:notificationID/resend", h.resend)
	}
}

// dispatch godoc
// @Summary Dispatch a notification email
// @Description Sends a queued email log row by id, or an inline message. The row is marked sent or failed.
// @Tags notifications
// @Accept json
// @Produce json
// @Param dispatch body dto.DispatchRequest true "Record id or inline message"
// @Success 200 {object} dto.DispatchResponse
// @Failure 400 {object} dto.DispatchResponse
// @Failure 404 {object} dto.DispatchResponse
// @Failure 502 {object} dto.DispatchResponse "Provider or recipient failure"
// @Router /api/v1/notifications/dispatch [post]
// @Security BearerAuth
func (h *notificationHandler) dispatch(c *gin.Context) {
	var req dto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.DispatchResponse{Success: false, Error: "Invalid request body"})
		return
	}
	data, err := h.notificationService.Dispatch(c.Request.Context(), req)
	h.writeDispatchResult(c, data, err)
}

// resend godoc
// @Summary Resend a notification
// @Description Dispatches an email log row of one of the owner's documents again.
// @Tags notifications
// @Produce json
// @Param notificationID path string true "Notification ID"
// @Success 200 {object} dto.DispatchResponse
// @Failure 404 {object} dto.DispatchResponse
// @Failure 502 {object} dto.DispatchResponse
// @Router /api/v1/notifications/{notificationID}/resend [post]
// @Security BearerAuth
func (h *notificationHandler) resend(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	data, err := h.notificationService.Resend(c.Request.Context(), userID, c.Param("notificationID"))
	h.writeDispatchResult(c, data, err)
}

func (h *notificationHandler) writeDispatchResult(c *gin.Context, data map[string]any, err error) {
	if err != nil {
		status, msg := errorStatus(err, "Notification", "Failed to send email")
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if status >= http.StatusInternalServerError {
			logger.Error("Notification dispatch failed", slog.String("error", err.Error()))
		} else {
			logger.Warn("Notification dispatch rejected", slog.Int("status", status), slog.String("error", err.Error()))
		}
		c.JSON(status, dto.DispatchResponse{Success: false, Error: msg})
		return
	}
	c.JSON(http.StatusOK, dto.DispatchResponse{Success: true, Data: data})
}
