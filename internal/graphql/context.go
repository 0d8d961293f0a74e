package graphql

import (
	"context"
	"time"

	"github.com/you/userhub/domain"
)

// CookieWriter lets resolvers attach or clear the credential cookie without
// holding the raw response writer.
type CookieWriter interface {
	SetToken(token string, maxAge time.Duration)
	ClearToken()
}

// RequestScope carries one request's validated identity and cookie access.
// It is built once at the entry point and threaded to every resolver through
// the request context.
type RequestScope struct {
	Identity *domain.Identity
	Cookies  CookieWriter
}

type scopeKey struct{}

// WithScope attaches the request scope to the context
func WithScope(ctx context.Context, scope *RequestScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFrom extracts the request scope from the context; nil when absent
func ScopeFrom(ctx context.Context) *RequestScope {
	scope, _ := ctx.Value(scopeKey{}).(*RequestScope)
	return scope
}
