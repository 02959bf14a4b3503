package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorStatus maps a service error to its HTTP status and client-safe message.
// resource names the entity in not-found and conflict messages, failure is the
// message used for unexpected errors.
func errorStatus(err error, resource string, failure string) (int, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, apperrors.UserMessage(err, "Invalid request")
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, "Session expired, please sign in again"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, resource + " not found"
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, resource + " already exists"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, "This " + strings.ToLower(resource) + " cannot be changed in its current status"
	case errors.Is(err, apperrors.ErrDelivery):
		return http.StatusBadGateway, "Failed to send email"
	default:
		return http.StatusInternalServerError, failure
	}
}

// respondError logs err at a level matching its status and writes the error body.
func respondError(c *gin.Context, err error, resource string, failure string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status, msg := errorStatus(err, resource, failure)
	if status >= http.StatusInternalServerError {
		logger.Error(failure, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": msg})
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
