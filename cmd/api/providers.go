package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/readieg/library/internal/domain/book"
	"github.com/readieg/library/internal/domain/user"
	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/internal/infrastructure/persistence/mongodb"
	"github.com/readieg/library/internal/infrastructure/persistence/mysql"
	"github.com/readieg/library/internal/infrastructure/persistence/redis"
	"github.com/readieg/library/internal/interface/http/middleware"
	"github.com/readieg/library/pkg/jwt"
	"github.com/readieg/library/pkg/logger"
	"github.com/readieg/library/pkg/mq"
)

// App InitializeApp的产物
type App struct {
	Config *config.Config
	Engine *gin.Engine
	Users  user.Service
}

// stores 按store.driver选出的一组仓储
type stores struct {
	Books book.Repository
	Users user.Repository
}

// provideStores 根据配置选择MongoDB或MySQL
// 返回的cleanup负责断开连接
func provideStores(cfg *config.Config) (*stores, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return &stores{
			Books: mysql.NewBookRepository(db),
			Users: mysql.NewUserRepository(db),
		}, cleanup, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(context.Background(), cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			_ = client.Disconnect(context.Background())
		}
		return &stores{
			Books: mongodb.NewBookRepository(db),
			Users: mongodb.NewUserRepository(db),
		}, cleanup, nil

	default:
		return nil, nil, fmt.Errorf("不支持的存储驱动: %q", cfg.Store.Driver)
	}
}

func provideBookRepository(s *stores) book.Repository { return s.Books }

func provideUserRepository(s *stores) user.Repository { return s.Users }

// provideRedis 会话存储使用的Redis连接
func provideRedis(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideTokenManager 会话Cookie的签名与有效期来自session配置
func provideTokenManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.Session.Secret, cfg.Session.TTL)
}

func provideSessionMiddleware(tokens *jwt.Manager, store *redis.SessionStore, cfg *config.Config) *middleware.SessionMiddleware {
	return middleware.NewSessionMiddleware(tokens, store, cfg.Session)
}

// providePublisher 事件发布者
// 未启用或连接失败时退化为NoopPublisher，事件本来就是尽力而为
func providePublisher(cfg *config.Config) (mq.EventPublisher, func()) {
	if !cfg.MQ.Enabled {
		return mq.NoopPublisher{}, func() {}
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		logger.Warn().Err(err).Msg("RabbitMQ不可用，图书事件将不会发布")
		return mq.NoopPublisher{}, func() {}
	}
	g := mq.NewGuardedPublisher(p, cfg.MQ.BreakerFailures, cfg.MQ.BreakerTimeout)
	return g, func() { _ = g.Close() }
}
