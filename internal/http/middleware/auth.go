package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/userhub/domain"
)

// IdentityKey is the gin context key holding the authenticated identity
const IdentityKey = "identity"

// tokenCookie mirrors the cookie name the login resolver writes
const tokenCookie = "token"

// IdentityMiddleware resolves the caller's identity when a credential is
// present. Requests without a credential, or with one that no longer holds,
// pass through unauthenticated; field-level gates decide what they may reach.
func IdentityMiddleware(accounts domain.AccountService) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		identity, err := accounts.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) || errors.Is(err, domain.ErrSessionExpired) {
				// A stale cookie would otherwise fail on every request
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
			}
			c.Next()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	})
}

// IdentityFrom reads the identity set by IdentityMiddleware; nil when the
// request is unauthenticated.
func IdentityFrom(c *gin.Context) *domain.Identity {
	value, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*domain.Identity)
	return identity
}

// extractToken prefers the credential cookie and falls back to a bearer header
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(tokenCookie); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
