package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	gqlx "github.com/you/userhub/internal/graphql"
)

// TokenCookie is the cookie holding the signed credential
const TokenCookie = "token"

// ginCookieWriter implements the resolver-facing cookie contract on top of a
// gin context. The cookie is http-only and same-site lax; Secure follows the
// environment flag.
type ginCookieWriter struct {
	c      *gin.Context
	secure bool
}

// NewCookieWriter creates a cookie writer bound to one request
func NewCookieWriter(c *gin.Context, secure bool) gqlx.CookieWriter {
	return &ginCookieWriter{c: c, secure: secure}
}

func (w *ginCookieWriter) SetToken(token string, maxAge time.Duration) {
	w.c.SetSameSite(http.SameSiteLaxMode)
	w.c.SetCookie(TokenCookie, token, int(maxAge.Seconds()), "/", "", w.secure, true)
}

func (w *ginCookieWriter) ClearToken() {
	w.c.SetSameSite(http.SameSiteLaxMode)
	w.c.SetCookie(TokenCookie, "", -1, "/", "", w.secure, true)
}
