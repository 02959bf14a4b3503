package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/core/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/middleware"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler completes Google sign-in by exchanging the authorization code
// the frontend received on its redirect.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	profileService     portssvc.ProfileSvcFacade
	auth               *authHandler
}

func newGoogleOAuthHandler(services *portssvc.ServiceContainer, auth *authHandler) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: services.GoogleOAuth,
		profileService:     services.Profile,
		auth:               auth,
	}
}

// loginURL godoc
// @Summary Google sign-in URL
// @Description Returns the Google consent URL with a fresh state value for the frontend to redirect to.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/auth/google/login [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).ErrorContext(ctx, "Failed to generate OAuth state", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to start Google sign-in.")
		c.JSON(appErr.Code, appErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"url": h.googleOAuthService.GetGoogleLoginURL(ctx, state), "state": state}})
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Exchanges the code for Google tokens, validates the ID token, finds or creates the profile and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 401 {object} map[string]string "Invalid Google ID token"
// @Failure 504 {object} map[string]string "Google unreachable"
// @Router /api/v1/auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperrors.NewBadRequestError("Authorization code is required.")
		c.JSON(appErr.Code, appErr)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		lowered := strings.ToLower(err.Error())
		if strings.Contains(lowered, "invalid_grant") || strings.Contains(lowered, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.ErrorContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	profile, err := h.profileService.FindOrCreateGoogleProfile(ctx, services.GoogleUserInfoFromPayload(payload))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to find or create google profile", slog.String("error", err.Error()))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, appErr)
			return
		}
		defaultErr := apperrors.NewInternalServerError("Failed to process user authentication.")
		c.JSON(defaultErr.Code, defaultErr)
		return
	}
	if profile.CreatedAt.Equal(profile.UpdatedAt) {
		middleware.PosthogEvent(c, h.auth.analytics, profile.ProfileID, utils.EventUserSignedUp, map[string]any{"provider": string(domain.ProviderGoogle)})
	}

	logger.InfoContext(ctx, "Profile signed in via Google", slog.String("user_id", profile.ProfileID))
	h.auth.issueSession(c, http.StatusOK, profile)
}
