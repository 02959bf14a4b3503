package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/core/domain"
	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/dustbill/dustbill_backend/internal/middleware"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/dustbill/dustbill_backend/pkg/config"
	"github.com/gin-gonic/gin"
)

// authHandler handles sign-up, sign-in and the refresh token session.
type authHandler struct {
	profileService portssvc.ProfileSvcFacade
	tokenService   portssvc.TokenSvcFacade
	analytics      *utils.PosthogClientWrapper
	cookieName     string
	cookiePath     string
	secureCookie   bool
}

func newAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer, analytics *utils.PosthogClientWrapper) *authHandler {
	return &authHandler{
		profileService: services.Profile,
		tokenService:   services.Token,
		analytics:      analytics,
		cookieName:     cfg.RefreshTokenCookieName,
		cookiePath:     cfg.RefreshTokenCookiePath,
		secureCookie:   cfg.IsProduction,
	}
}

// registerAuthRoutes sets up the unauthenticated /api/v1/auth routes.
// loginLimit guards the password endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, h *authHandler, oauth *googleOAuthHandler, loginLimit gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", loginLimit, h.register)
		auth.POST("/login", loginLimit, h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.GET("/google/login", oauth.loginURL)
		auth.POST("/google/exchange-code", oauth.exchangeCode)
	}
}

// register godoc
// @Summary Register a new profile
// @Description Creates an email/password profile and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.profileService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An account with this email already exists"})
			return
		}
		respondError(c, err, "Profile", "Failed to register")
		return
	}

	middleware.PosthogEvent(c, h.analytics, profile.ProfileID, utils.EventUserSignedUp, map[string]any{"provider": string(domain.ProviderLocal)})
	h.issueSession(c, http.StatusCreated, profile)
}

// login godoc
// @Summary Sign in
// @Description Authenticates with email and password, returns an access token and sets the refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	profile, err := h.profileService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		respondError(c, err, "Profile", "Failed to sign in")
		return
	}

	h.issueSession(c, http.StatusOK, profile)
}

// refresh godoc
// @Summary Refresh the access token
// @Description Exchanges the refresh cookie for a new access token. The refresh token is rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	ctx := c.Request.Context()
	profileID, rawToken, ok := h.readRefreshCookie(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}

	profile, err := h.tokenService.ValidateAndParseRefreshToken(ctx, profileID, rawToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err, "Profile", "Failed to refresh session")
		return
	}

	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, profile)
	if err != nil {
		respondError(c, err, "Profile", "Failed to generate token")
		return
	}
	if err := h.rotateRefreshToken(c, profile); err != nil {
		respondError(c, err, "Profile", "Failed to refresh session")
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken, ExpiresAt: expiresAt})
}

// logout godoc
// @Summary Sign out
// @Description Revokes the stored refresh token and clears the cookie.
// @Tags auth
// @Success 204
// @Router /api/v1/auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	if profileID, _, ok := h.readRefreshCookie(c); ok {
		if err := h.profileService.ClearRefreshToken(c.Request.Context(), profileID); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to revoke refresh token", slog.String("error", err.Error()))
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// issueSession mints an access token, rotates the refresh cookie and writes the login response.
func (h *authHandler) issueSession(c *gin.Context, status int, profile *domain.Profile) {
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), profile)
	if err != nil {
		respondError(c, err, "Profile", "Failed to generate token")
		return
	}
	if err := h.rotateRefreshToken(c, profile); err != nil {
		respondError(c, err, "Profile", "Failed to start session")
		return
	}
	c.JSON(status, dto.LoginResponse{Token: accessToken, ExpiresAt: expiresAt, Profile: dto.ToProfileResponse(profile)})
}

func (h *authHandler) rotateRefreshToken(c *gin.Context, profile *domain.Profile) error {
	rawToken, expiresAt, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), profile)
	if err != nil {
		return err
	}
	if err := h.profileService.UpdateRefreshToken(c.Request.Context(), profile.ProfileID, utils.HashRefreshToken(rawToken), expiresAt); err != nil {
		return err
	}
	maxAge := int(time.Until(expiresAt).Seconds())
	h.setCookie(c, profile.ProfileID+":"+rawToken, maxAge)
	return nil
}

// readRefreshCookie splits the "<profileID>:<token>" cookie value.
func (h *authHandler) readRefreshCookie(c *gin.Context) (string, string, bool) {
	value, err := c.Cookie(h.cookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	profileID, rawToken, found := strings.Cut(value, ":")
	if !found || profileID == "" || rawToken == "" {
		return "", "", false
	}
	return profileID, rawToken, true
}

func (h *authHandler) clearRefreshCookie(c *gin.Context) {
	h.setCookie(c, "", -1)
}

func (h *authHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, value, maxAge, h.cookiePath, "", h.secureCookie, true)
}
