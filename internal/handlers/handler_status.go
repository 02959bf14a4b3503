package handlers

import (
	"net/http"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// StatusResponse describes the running service.
type StatusResponse struct {
	Service     string   `json:"service"`
	Environment string   `json:"environment"`
	Currencies  []string `json:"currencies"`
	Uptime      string   `json:"uptime"`
}

type statusHandler struct {
	environment string
	startedAt   time.Time
}

func newStatusHandler(production bool) *statusHandler {
	env := "development"
	if production {
		env = "production"
	}
	return &statusHandler{environment: env, startedAt: time.Now()}
}

// getStatus godoc
// @Summary Service status
// @Description Reports the environment, supported currencies and uptime.
// @Tags root
// @Produce json
// @Success 200 {object} handlers.StatusResponse
// @Router /status [get]
func (h *statusHandler) getStatus(c *gin.Context) {
	supported := domain.SupportedCurrencies()
	codes := make([]string, 0, len(supported))
	for _, cur := range supported {
		codes = append(codes, string(cur.CurrencyCode))
	}
	c.JSON(http.StatusOK, StatusResponse{
		Service:     "dustbill",
		Environment: h.environment,
		Currencies:  codes,
		Uptime:      time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
