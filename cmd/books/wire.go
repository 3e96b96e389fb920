//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 设计说明：
// 1. Wire在编译期生成依赖组装代码，零运行时开销、类型安全
// 2. main.go里保留了等价的手动组装版本；运行 `wire gen ./cmd/books`
//    生成wire_gen.go后可切换为InitializeApp()
// 3. Provider按层分组，依赖链：Repository ← Service ← Handler ← Engine

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/rating"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/googlebooks"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.LoadBooks, // 加载books服务配置
	mysql.NewBooksDB, // MySQL连接+表迁移
	redis.NewClient,  // Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewRatingRepository,
	mysql.NewTxManager,
	provideTopStore,
)

// domainSet 领域层依赖
// 评分服务同时实现book.RatingLedger，图书服务的级联操作经由它执行
var domainSet = wire.NewSet(
	rating.NewService,
	book.NewService,
	provideEnricher,
	wire.Bind(new(book.RatingLedger), new(*rating.Service)),
	wire.Bind(new(book.TxRunner), new(*mysql.TxManager)),
	wire.Bind(new(rating.TopStore), new(*redis.TopBooksStore)),
	wire.Bind(new(book.Enricher), new(*googlebooks.Client)),
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewRatingHandler,
)

// provideEnricher 从配置创建Google Books客户端
func provideEnricher(cfg *config.Config) *googlebooks.Client {
	return googlebooks.NewClient(
		cfg.GoogleBooks.BaseURL,
		cfg.GoogleBooks.Timeout,
		cfg.GoogleBooks.RPS,
	)
}

// provideTopStore 从Redis客户端创建榜单快照存储
func provideTopStore(client *goredis.Client) *redis.TopBooksStore {
	return redis.NewTopBooksStore(client)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	ratingHandler *handler.RatingHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(serviceName))
	r.Use(middleware.CORS())

	// 路由(含/ping与/metrics)与main.go的手动组装版本完全一致
	registerRoutes(r, bookHandler, ratingHandler)

	return r
}

// InitializeApp 初始化整个应用
// wire.Build声明Provider集合，wire gen生成实际组装代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		handlerSet,
		provideGinEngine,
	)

	return nil, nil
}
