package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/http/response"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// TokenVerifier attaches request data for a valid token.
type TokenVerifier interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type AuthMiddleware struct {
	log      *logger.Logger
	verifier TokenVerifier
	metrics  *observability.Metrics
}

func NewAuthMiddleware(log *logger.Logger, verifier TokenVerifier, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), verifier: verifier, metrics: metrics}
}

// RequireAuth rejects requests without a valid bearer token with 401.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			am.reject(c, "missing_token", errors.New("authentication credentials were not provided"))
			return
		}
		ctx, err := am.verifier.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.reject(c, "invalid_token", err)
			return
		}
		if ctxutil.UserID(ctx) == uuid.Nil {
			am.reject(c, "invalid_token", errors.New("token has no subject"))
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through. A token that is present but
// invalid is still rejected.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		ctx, err := am.verifier.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.reject(c, "invalid_token", err)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (am *AuthMiddleware) reject(c *gin.Context, reason string, err error) {
	am.metrics.IncAuthFailure(reason)
	am.log.Debug("auth rejected", "reason", reason, "request_id", ctxutil.RequestID(c.Request.Context()))
	response.AbortError(c, http.StatusUnauthorized, "unauthorized", err)
}

func extractToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	for _, scheme := range []string{"Bearer ", "Token "} {
		if len(authHeader) > len(scheme) && strings.EqualFold(authHeader[:len(scheme)], scheme) {
			return strings.TrimSpace(authHeader[len(scheme):])
		}
	}
	return ""
}
