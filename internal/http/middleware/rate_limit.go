package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/userhub/domain"
)

// RateLimitMiddleware creates request throttling middleware. Every request,
// authenticated or not, counts against its client key before any other work
// happens.
func RateLimitMiddleware(limiter domain.RateLimiter, max int, window time.Duration) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		key := ClientKey(c)

		if err := limiter.Admit(c.Request.Context(), key, max, window); err != nil {
			var apiErr *domain.APIError
			if errors.As(err, &apiErr) && apiErr.Code == domain.CodeRateLimited {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error": apiErr.Message,
					"code":  apiErr.Code,
				})
				c.Abort()
				return
			}
			// Counter store unreachable; fail closed
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "rate limit check failed",
				"code":  domain.CodeInternal,
			})
			c.Abort()
			return
		}

		c.Next()
	})
}

// ClientKey derives the throttling key for a request. The first entry of
// X-Forwarded-For wins, then the socket address, then a shared fallback so
// requests with no derivable address still share one bucket.
func ClientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}
	if c.Request.RemoteAddr != "" {
		return c.Request.RemoteAddr
	}
	return "unknown-ip"
}
