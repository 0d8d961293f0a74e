package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	gqlx "github.com/you/userhub/internal/graphql"
	"github.com/you/userhub/internal/http/middleware"
)

// GraphQLHandler executes queries against the schema over HTTP POST
type GraphQLHandler struct {
	schema graphql.Schema
	secure bool
}

// NewGraphQLHandler creates the GraphQL entry point. secure controls the
// Secure attribute of the credential cookie.
func NewGraphQLHandler(schema graphql.Schema, secure bool) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, secure: secure}
}

// GraphQLRequest represents one query over the wire
type GraphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Execute handles POST /graphql
func (h *GraphQLHandler) Execute(c *gin.Context) {
	var req GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := &gqlx.RequestScope{
		Identity: middleware.IdentityFrom(c),
		Cookies:  NewCookieWriter(c, h.secure),
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        gqlx.WithScope(c.Request.Context(), scope),
	})

	// Resolver failures travel in the errors array, not the status code
	c.JSON(http.StatusOK, result)
}
