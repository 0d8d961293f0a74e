package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/you/userhub/domain"
)

// AuthRequirement tags a field as protected. An empty role list means
// "authenticated only"; a non-empty list additionally requires the identity's
// role set to intersect it.
type AuthRequirement struct {
	Roles []domain.Role
}

// RequireAuth wraps a resolver with the authorization gate. The wrapped
// resolver runs with its original arguments untouched only after the checks
// pass.
func RequireAuth(required []domain.Role, next graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		scope := ScopeFrom(p.Context)
		if scope == nil || scope.Identity == nil {
			return nil, domain.ErrUnauthenticated
		}
		if len(required) > 0 && !domain.RolesIntersect(scope.Identity.Roles, required) {
			return nil, domain.ErrForbidden
		}
		return next(p)
	}
}
