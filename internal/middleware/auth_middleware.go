package middleware

import (
	"net/http"
	"strings"

	"lpsimplex/internal/auth"
	"lpsimplex/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	PrincipalKey = "current_principal"
)

// Middleware handles authentication middleware
type Middleware struct {
	jwt *auth.Service
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(jwt *auth.Service) *Middleware {
	return &Middleware{jwt: jwt}
}

// AuthOptions configures authentication middleware behavior
type AuthOptions struct {
	AdminOnly bool // Require admin role
}

// WithAdminOnly sets AdminOnly option
func WithAdminOnly() func(*AuthOptions) {
	return func(opts *AuthOptions) {
		opts.AdminOnly = true
	}
}

// AuthMiddleware validates JWT token and applies optional authorization checks
func (m *Middleware) AuthMiddleware(options ...func(*AuthOptions)) gin.HandlerFunc {
	opts := &AuthOptions{}
	for _, opt := range options {
		opt(opts)
	}

	return func(c *gin.Context) {
		logger := GetLogger(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authentication failed: missing authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			shared.RespondWithError(c, http.StatusUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") || strings.HasPrefix(authHeader, "bearer ") {
			tokenString = authHeader[len("Bearer "):]
		}
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			shared.RespondWithError(c, http.StatusUnauthorized, "token required")
			c.Abort()
			return
		}

		claims, err := m.jwt.Validate(tokenString)
		if err != nil {
			logger.Warn("Authentication failed: invalid token",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			shared.RespondWithError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(PrincipalKey, claims.Subject)
		c.Set("principal_role", string(claims.Role))

		if opts.AdminOnly && claims.Role != auth.RoleAdmin {
			logger.Warn("Admin access denied",
				zap.String("path", c.Request.URL.Path),
				zap.String("role", string(claims.Role)),
				zap.String("client_ip", c.ClientIP()),
			)
			shared.RespondWithError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}

		logger.Info("Authentication successful",
			zap.String("subject", claims.Subject),
			zap.String("role", string(claims.Role)),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// CurrentPrincipal retrieves the authenticated subject from context.
func CurrentPrincipal(c *gin.Context) (string, bool) {
	v, exists := c.Get(PrincipalKey)
	if !exists {
		return "", false
	}
	subject, ok := v.(string)
	return subject, ok
}
