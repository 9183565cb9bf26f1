package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/readieg/library/docs"
	"github.com/readieg/library/internal/domain/user"
	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/metrics"
	"github.com/readieg/library/pkg/tracing"
)

// @title                       Library Catalog API
// @version                     1.0
// @description                 图书目录服务：查询构建、分页与基于会话的鉴权
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        library.sid
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 日志
	closer, err := logger.Init(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	logger.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("store", cfg.Store.Driver).
		Str("redis", cfg.Redis.Addr()).
		Msg("配置加载成功")

	// 3. 指标与链路追踪
	metrics.InitMetrics()

	shutdownTracer, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}

	// 4. 依赖注入
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化应用失败")
	}

	// 5. 管理员初始化，失败直接退出
	if err := bootstrapAdmin(app); err != nil {
		cleanup()
		logger.Fatal().Err(err).Msg("初始化管理员失败")
	}

	// 6. 启动HTTP服务，收到SIGINT/SIGTERM后优雅退出
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("服务异常退出")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("正在关闭服务")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP服务关闭失败")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("链路追踪关闭失败")
	}
	cleanup()

	logger.Info().Msg("服务已退出")
}

// bootstrapAdmin 按admin配置确保管理员存在
func bootstrapAdmin(app *App) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seed := user.Seed{
		Email:    app.Config.Admin.Email,
		Password: app.Config.Admin.Password,
		Name:     app.Config.Admin.Name,
	}
	result, err := app.Users.EnsureAdmin(ctx, seed)
	if err != nil {
		return err
	}

	ev := logger.Info().Str("result", string(result))
	if result != user.BootstrapSkipped {
		ev = ev.Str("email", user.NormalizeEmail(seed.Email))
	}
	ev.Msg("管理员初始化完成")
	return nil
}
