package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bohselecta/luvler-metering/internal/auth"
	"github.com/bohselecta/luvler-metering/internal/config"
	"github.com/bohselecta/luvler-metering/internal/logger"
	"github.com/bohselecta/luvler-metering/internal/types"
)

// OptionalAuthMiddleware authenticates requests carrying a Bearer token and
// sets the user and org IDs in the request context for downstream handlers.
// Requests without a token, or with an invalid one, proceed as anonymous:
// anonymous callers get the unmetered demo path, so metering must never
// turn an auth failure into a denial.
func OptionalAuthMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	authProvider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("invalid token, treating caller as anonymous", "error", err)
			c.Next()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.UserID)
		if claims.OrgID != "" {
			ctx = context.WithValue(ctx, types.CtxOrgID, claims.OrgID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminAuthMiddleware guards the administrative surface with the configured
// admin key. Rejection happens before any handler or store access runs.
// When no admin key is configured the whole surface is disabled.
func AdminAuthMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Auth.AdminKey == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin surface is disabled"})
			c.Abort()
			return
		}

		key := c.GetHeader(types.HeaderAdminKey)
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin key required"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.Auth.AdminKey)) != 1 {
			logger.Debugw("invalid admin key")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
