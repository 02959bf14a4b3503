package middleware

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey stores the authenticated profile id; sessionKey the full session.
const (
	userIDKey  = contextKey("userID")
	sessionKey = contextKey("session")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session domain.Session) context.Context {
	ctx = context.WithValue(ctx, sessionKey, session)
	if session.IsAuthenticated() {
		ctx = context.WithValue(ctx, userIDKey, session.UserID)
	}
	return ctx
}

// SessionFromCtx returns the caller's session, anonymous if none was established.
func SessionFromCtx(ctx context.Context) domain.Session {
	if s, ok := ctx.Value(sessionKey).(domain.Session); ok {
		return s
	}
	return domain.AnonymousSession
}
