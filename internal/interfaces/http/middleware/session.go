package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healclinics/storefront/internal/infrastructure/session"
)

// Context keys for session data
const (
	SessionIDKey = "session_id"
	AuthTokenKey = "auth_token"
)

// SessionConfig configures the session middleware.
type SessionConfig struct {
	Manager    *session.Manager
	CookieName string
	Secure     bool
	Logger     *zap.Logger
}

// Session resolves the customer's session from the session cookie, issuing a
// fresh session (and cookie) when the token is missing, invalid, or expired.
// Every request ends up with a session ID in the context.
func Session(cfg SessionConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		var current *session.Session

		if token, err := c.Cookie(cfg.CookieName); err == nil && token != "" {
			verified, err := cfg.Manager.Verify(token)
			if err == nil {
				current = verified
			} else {
				logger.Debug("session token rejected", zap.Error(err))
			}
		}

		if current == nil {
			fresh, token, err := cfg.Manager.Issue()
			if err != nil {
				logger.Error("failed to issue session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   gin.H{"code": "ERR_INTERNAL", "message": "Kon geen sessie starten"},
				})
				return
			}
			current = fresh
			maxAge := int(time.Until(fresh.ExpiresAt).Seconds())
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, token, maxAge, "/", "", cfg.Secure, true)
		}

		c.Set(SessionIDKey, current.ID)

		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			c.Set(AuthTokenKey, strings.TrimPrefix(auth, "Bearer "))
		}

		c.Next()
	}
}

// GetSessionID returns the session ID set by the Session middleware.
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// GetAuthToken returns the backend bearer token, if the request carried one.
func GetAuthToken(c *gin.Context) string {
	return c.GetString(AuthTokenKey)
}
