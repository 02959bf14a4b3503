package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingAuthHeader = errors.New("Authorization header required")
	errBadAuthHeader     = errors.New("Authorization header format must be Bearer {token}")
	errMissingSubject    = errors.New("Invalid token claims")
)

// AuthMiddleware creates a Gin middleware handler that requires a valid JWT bearer token.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, err := authenticate(c, jwtSecret)
		if err != nil {
			logger.Warn("Authentication failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authErrorMessage(err)})
			return
		}

		establishSession(c, logger, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware establishes a session when a valid bearer token is present
// and an anonymous one otherwise. It never rejects the request.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if c.GetHeader("Authorization") == "" {
			c.Request = c.Request.WithContext(WithSession(c.Request.Context(), domain.AnonymousSession))
			c.Next()
			return
		}

		userID, err := authenticate(c, jwtSecret)
		if err != nil {
			logger.Debug("Ignoring invalid bearer token on public route", slog.String("error", err.Error()))
			c.Request = c.Request.WithContext(WithSession(c.Request.Context(), domain.AnonymousSession))
			c.Next()
			return
		}

		establishSession(c, logger, userID)
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtSecret string) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errBadAuthHeader
	}

	claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errMissingSubject
	}
	return claims.Subject, nil
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingAuthHeader), errors.Is(err, errBadAuthHeader), errors.Is(err, errMissingSubject):
		return err.Error()
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token not valid yet"
	default:
		return "Invalid token"
	}
}

func establishSession(c *gin.Context, logger *slog.Logger, userID string) {
	ctx := WithSession(c.Request.Context(), domain.Session{UserID: userID})
	ctx = WithLogger(ctx, logger.With(slog.String("user_id", userID)))
	c.Request = c.Request.WithContext(ctx)
}
