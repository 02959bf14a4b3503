package handlers

import (
	"net/http"

	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
	publicURL        string
}

// registerDashboardRoutes registers the owner's summary route.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvc, publicURL string) {
	h := &dashboardHandler{dashboardService: dashboardService, publicURL: publicURL}
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Owner dashboard
// @Description Revenue totals, month-over-month change, a six month chart, status counts and recent invoices.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/dashboard [get]
// @Security BearerAuth
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Dashboard", "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard, h.publicURL))
}
