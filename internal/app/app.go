package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/userhub/internal/config"
	gqlx "github.com/you/userhub/internal/graphql"
	httpx "github.com/you/userhub/internal/http"
	"github.com/you/userhub/internal/http/handlers"
	"github.com/you/userhub/internal/http/middleware"
	"github.com/you/userhub/internal/logging"
)

func Run(cfg *config.Config) error {
	logger := logging.New(cfg.Environment)

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	resolvers := gqlx.NewResolvers(container.AccountSvc, cfg.TokenTTL)
	schema, err := gqlx.NewSchema(resolvers)
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	gh := handlers.NewGraphQLHandler(schema, cfg.IsProduction())
	limit := middleware.RateLimitMiddleware(container.Limiter, cfg.RateLimitMax, cfg.RateLimitWindow)
	identity := middleware.IdentityMiddleware(container.AccountSvc)
	r := httpx.BuildRouter(gh, limit, identity)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, r)
}
