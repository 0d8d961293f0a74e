package graphql

import (
	"github.com/graphql-go/graphql"
)

// fieldDef pairs a field with its optional authorization tag. The gate is
// applied once, when the schema is assembled, so a newly tagged field is
// protected without touching its resolver.
type fieldDef struct {
	field *graphql.Field
	auth  *AuthRequirement
}

// NewSchema assembles the executable schema from the resolver set
func NewSchema(r *Resolvers) (graphql.Schema, error) {
	queries := map[string]fieldDef{
		"users": {
			field: &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.Users,
			},
		},
		"me": {
			field: &graphql.Field{
				Type:    userType,
				Resolve: r.Me,
			},
			auth: &AuthRequirement{},
		},
	}

	mutations := map[string]fieldDef{
		"createUser": {
			field: &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phoneNumber": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"roles":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(RoleEnum)))},
				},
				Resolve: r.CreateUser,
			},
		},
		"verifyPhoneNumber": {
			field: &graphql.Field{
				Type: verifiedUserResponseType,
				Args: graphql.FieldConfigArgument{
					"username":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phoneNumber":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"verificationCode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.VerifyPhoneNumber,
			},
		},
		"login": {
			field: &graphql.Field{
				Type: loginResponseType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.Login,
			},
		},
		"logout": {
			field: &graphql.Field{
				Type:    graphql.Boolean,
				Resolve: r.Logout,
			},
			auth: &AuthRequirement{},
		},
	}

	schemaConfig := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: applyGate(queries),
		}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: applyGate(mutations),
		}),
	}

	return graphql.NewSchema(schemaConfig)
}

// applyGate wraps every tagged field's resolver with the authorization gate
func applyGate(defs map[string]fieldDef) graphql.Fields {
	fields := graphql.Fields{}
	for name, def := range defs {
		field := def.field
		if def.auth != nil {
			field.Resolve = RequireAuth(def.auth.Roles, field.Resolve)
		}
		fields[name] = field
	}
	return fields
}
