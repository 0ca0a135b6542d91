package app

import (
	"github.com/gin-gonic/gin"

	"github.com/stashbox/core/internal/middleware"
	"github.com/stashbox/core/internal/modules/auth/user"
	"github.com/stashbox/core/internal/modules/content/item"
	"github.com/stashbox/core/internal/modules/processing/ai"
	"github.com/stashbox/core/internal/modules/system/configs"
	pkgredis "github.com/stashbox/core/internal/pkg/redis"
	"github.com/stashbox/core/internal/pkg/response"
	"github.com/stashbox/core/internal/pkg/taskqueue"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Shared services
	cfgSvc := configs.NewService(db)
	taskSvc := taskqueue.NewService(rc)
	aiSvc := ai.NewService(db, cfgSvc, taskSvc, a.logger)
	userSvc := user.NewService(db)
	itemSvc := item.NewService(db, cfgSvc, aiSvc, a.logger)

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.RateLimit(rc.Raw()))

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	user.NewHandler(userSvc).RegisterRoutes(api, authMW)
	item.NewHandler(itemSvc).RegisterRoutes(api, authMW)
	ai.NewHandler(aiSvc).RegisterRoutes(api, authMW)
	configs.NewHandler(cfgSvc).RegisterRoutes(api, authMW)
}
