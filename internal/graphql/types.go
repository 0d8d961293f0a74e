package graphql

import (
	"strconv"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/you/userhub/domain"
)

// apiUser is the wire shape of a user record. Roles are bare enum values,
// already mapped from their join rows.
type apiUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Roles       []string  `json:"roles"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type verifiedUserResponse struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Verified    bool   `json:"verified"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func toAPIUser(u *domain.User) *apiUser {
	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = string(r)
	}
	return &apiUser{
		ID:          strconv.FormatUint(uint64(u.ID), 10),
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Roles:       roles,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// RoleEnum mirrors the domain role set
var RoleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Role",
	Values: graphql.EnumValueConfigMap{
		"ADMIN":      &graphql.EnumValueConfig{Value: string(domain.RoleAdmin)},
		"INSTRUCTOR": &graphql.EnumValueConfig{Value: string(domain.RoleInstructor)},
		"STUDENT":    &graphql.EnumValueConfig{Value: string(domain.RoleStudent)},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"roles":       &graphql.Field{Type: graphql.NewList(RoleEnum)},
		"verified":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"createdAt":   &graphql.Field{Type: DateScalar},
		"updatedAt":   &graphql.Field{Type: DateScalar},
	},
})

var verifiedUserResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "VerifiedUserResponse",
	Fields: graphql.Fields{
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phoneNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"verified":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var loginResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LoginResponse",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})
