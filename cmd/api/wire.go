//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改本文件后执行 `wire gen ./cmd/api` 重新生成 wire_gen.go
//
// 依赖链：
//
//	config → stores(mongo|mysql) → domain service → use case → handler → router
//	config → redis → SessionStore → auth.Chain / SessionMiddleware

package main

import (
	"github.com/google/wire"

	"github.com/readieg/library/internal/application/auth"
	appbook "github.com/readieg/library/internal/application/book"
	appuser "github.com/readieg/library/internal/application/user"
	"github.com/readieg/library/internal/domain/book"
	"github.com/readieg/library/internal/domain/session"
	"github.com/readieg/library/internal/domain/user"
	"github.com/readieg/library/internal/infrastructure/config"
	"github.com/readieg/library/internal/infrastructure/persistence/redis"
	"github.com/readieg/library/internal/interface/http/handler"
	"github.com/readieg/library/internal/interface/http/middleware"
	"github.com/readieg/library/internal/interface/http/router"
)

// infrastructureSet 连接与仓储
var infrastructureSet = wire.NewSet(
	provideStores,
	provideBookRepository,
	provideUserRepository,
	provideRedis,
	redis.NewSessionStore,
	wire.Bind(new(session.Store), new(*redis.SessionStore)),
	providePublisher,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 用例与鉴权链
var applicationSet = wire.NewSet(
	auth.NewChain,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewReplaceBookUseCase,
	appbook.NewDeleteBookUseCase,
	appuser.NewListUsersUseCase,
	appuser.NewSetRoleUseCase,
)

// interfaceSet 中间件、处理器、路由
var interfaceSet = wire.NewSet(
	provideTokenManager,
	provideSessionMiddleware,
	middleware.NewAuthMiddleware,
	handler.NewBookHandler,
	handler.NewUserHandler,
	handler.NewAuthHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按构造的逆序关闭MQ、Redis、数据库连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
