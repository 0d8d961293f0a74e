package graphql

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/you/userhub/domain"
)

// Resolvers is the resolver set behind the API operations. All business
// logic lives in the account service; resolvers translate arguments and
// results and handle the cookie side effects.
type Resolvers struct {
	accounts domain.AccountService
	tokenTTL time.Duration
}

// NewResolvers creates the resolver set
func NewResolvers(accounts domain.AccountService, tokenTTL time.Duration) *Resolvers {
	return &Resolvers{
		accounts: accounts,
		tokenTTL: tokenTTL,
	}
}

// Users resolves Query.users
func (r *Resolvers) Users(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.accounts.ListUsers(p.Context)
	if err != nil {
		return nil, err
	}
	out := make([]*apiUser, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return out, nil
}

// Me resolves Query.me. The authorization gate guarantees an identity is
// present before this runs.
func (r *Resolvers) Me(p graphql.ResolveParams) (interface{}, error) {
	scope := ScopeFrom(p.Context)
	if scope == nil || scope.Identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.accounts.Profile(p.Context, scope.Identity.UserID)
	if err != nil {
		return nil, err
	}
	return toAPIUser(user), nil
}

// CreateUser resolves Mutation.createUser
func (r *Resolvers) CreateUser(p graphql.ResolveParams) (interface{}, error) {
	name, _ := p.Args["name"].(string)
	password, _ := p.Args["password"].(string)
	phoneNumber, _ := p.Args["phoneNumber"].(string)
	roles := rolesArg(p.Args["roles"])

	user, err := r.accounts.Register(p.Context, name, password, phoneNumber, roles)
	if err != nil {
		return nil, err
	}
	return toAPIUser(user), nil
}

// VerifyPhoneNumber resolves Mutation.verifyPhoneNumber
func (r *Resolvers) VerifyPhoneNumber(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	phoneNumber, _ := p.Args["phoneNumber"].(string)
	code, _ := p.Args["verificationCode"].(string)

	verified, err := r.accounts.VerifyPhone(p.Context, username, phoneNumber, code)
	if err != nil {
		return nil, err
	}
	return &verifiedUserResponse{
		Name:        verified.Name,
		PhoneNumber: verified.PhoneNumber,
		Verified:    verified.Verified,
	}, nil
}

// Login resolves Mutation.login. On success the token is attached as an
// http-only cookie and returned in the body as well.
func (r *Resolvers) Login(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	password, _ := p.Args["password"].(string)

	result, err := r.accounts.Login(p.Context, username, password)
	if err != nil {
		return nil, err
	}

	if scope := ScopeFrom(p.Context); scope != nil && scope.Cookies != nil {
		scope.Cookies.SetToken(result.Token, r.tokenTTL)
	}

	return &loginResponse{Token: result.Token}, nil
}

// Logout resolves Mutation.logout: stamps the last-logout marker so earlier
// credentials stop verifying, and clears the cookie.
func (r *Resolvers) Logout(p graphql.ResolveParams) (interface{}, error) {
	scope := ScopeFrom(p.Context)
	if scope == nil || scope.Identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	if err := r.accounts.Logout(p.Context, scope.Identity.UserID); err != nil {
		return nil, err
	}
	if scope.Cookies != nil {
		scope.Cookies.ClearToken()
	}
	return true, nil
}

// rolesArg converts the parsed enum list argument to domain roles, applying
// set semantics before anything persists.
func rolesArg(raw interface{}) []domain.Role {
	values, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	roles := make([]domain.Role, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			roles = append(roles, domain.Role(s))
		}
	}
	return domain.DedupRoles(roles)
}
