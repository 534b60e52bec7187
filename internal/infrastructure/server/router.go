package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/olegk/users-api/internal/adapter/handler"
	"github.com/olegk/users-api/internal/infrastructure/middleware"
	"github.com/olegk/users-api/internal/pkg/httputil"
)

type Router struct {
	engine        *gin.Engine
	userHandler   *handler.UserHandler
	avatarHandler *handler.AvatarHandler
	apiKey        *middleware.APIKeyMiddleware
	logger        *zap.Logger
}

type RouterConfig struct {
	UserHandler   *handler.UserHandler
	AvatarHandler *handler.AvatarHandler
	APIKey        *middleware.APIKeyMiddleware
	Logger        *zap.Logger
	Environment   string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:        engine,
		userHandler:   cfg.UserHandler,
		avatarHandler: cfg.AvatarHandler,
		apiKey:        cfg.APIKey,
		logger:        cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(cors.Default())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := r.engine.Group("/users")
	users.Use(r.apiKey.RequireToken())
	{
		users.GET("", r.userHandler.List)
		users.GET("/search", r.userHandler.Search)
		users.GET("/:email", r.userHandler.Get)
		users.POST("", r.userHandler.Create)
		users.PUT("/:email", r.userHandler.Update)
		users.DELETE("/:email", r.userHandler.Delete)
		users.OPTIONS("/:email", r.userHandler.Options)

		users.PUT("/:email/avatar", r.avatarHandler.Set)
		users.DELETE("/:email/avatar", r.avatarHandler.Delete)
	}

	// Unmatched routes get the same error envelope as everything else.
	r.engine.NoRoute(func(c *gin.Context) {
		httputil.Error(c, http.StatusNotFound, "not found")
	})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
