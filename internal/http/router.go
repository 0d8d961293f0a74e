package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/userhub/internal/http/handlers"
)

func BuildRouter(gh *handlers.GraphQLHandler, limit gin.HandlerFunc, identity gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/").Use(limit, identity)
	api.POST("/graphql", gh.Execute)

	return r
}
