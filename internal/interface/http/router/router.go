// Package router 路由注册
//
// 中间件顺序：
//
//	Recovery → Tracing(可选) → RequestLogger → Metrics → [/api] SessionMiddleware.Load → 鉴权链 → Handler
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/internal/interface/http/handler"
	"github.com/readieg/library/internal/interface/http/middleware"
	apperrors "github.com/readieg/library/pkg/errors"
	"github.com/readieg/library/pkg/metrics"
	"github.com/readieg/library/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Book *handler.BookHandler
	User *handler.UserHandler
	Auth *handler.AuthHandler
}

// New 创建并配置Gin引擎
func New(
	cfg *config.Config,
	h Handlers,
	sessions *middleware.SessionMiddleware,
	auth *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestLogger(), middleware.Metrics())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})

	// 运维接口
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api", sessions.Load())
	{
		books := api.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/:id", h.Book.GetBook)
			books.POST("", auth.RequireAdmin(), h.Book.CreateBook)
			books.PUT("/:id", auth.RequireAdmin(), h.Book.ReplaceBook)
			books.DELETE("/:id", auth.RequireAdmin(), h.Book.DeleteBook)
		}

		admin := api.Group("/admin", auth.RequireAdmin())
		{
			admin.GET("/users", h.User.ListUsers)
			admin.PUT("/users/:id/role", h.User.SetRole)
		}

		session := api.Group("/auth")
		{
			session.GET("/me", auth.AttachUser(), h.Auth.Me)
			session.POST("/logout", h.Auth.Logout)
		}
	}

	return r
}
