package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/rating"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/googlebooks"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// serviceName 日志与指标中的服务标识
const serviceName = "books"

// main books服务入口
// 说明：手动依赖注入（Provider分组见wire.go，可用wire生成替代）
func main() {
	// 1. 加载配置
	cfg, err := config.LoadBooks()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接(含books/ratings表迁移)
	db, err := mysql.NewBooksDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接(热门榜单快照)
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}
	defer redisClient.Close()

	// 4. 依赖注入(手动组装)
	// Repository ← Service ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	ratingRepo := mysql.NewRatingRepository(db)
	txManager := mysql.NewTxManager(db)
	topStore := redis.NewTopBooksStore(redisClient)
	enricher := googlebooks.NewClient(
		cfg.GoogleBooks.BaseURL,
		cfg.GoogleBooks.Timeout,
		cfg.GoogleBooks.RPS,
	)

	// 领域层(评分服务同时作为图书服务的评分台账)
	ratingService := rating.NewService(ratingRepo, topStore)
	bookService := book.NewService(bookRepo, enricher, ratingService, txManager)

	// 接口层
	bookHandler := handler.NewBookHandler(bookService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(serviceName))
	r.Use(middleware.CORS())

	// 6. 注册路由
	registerRoutes(r, bookHandler, ratingHandler)

	// 7. 启动服务(优雅关闭)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 books服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   监控指标: http://localhost%s/metrics\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭服务出错: %v", err)
	}
	log.Println("✅ 服务已关闭")
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler, ratingHandler *handler.RatingHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.Create)
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)
			books.PUT("/:id", bookHandler.Replace)
			books.DELETE("/:id", bookHandler.Delete)
		}

		// 评分模块
		ratings := v1.Group("/ratings")
		{
			ratings.GET("", ratingHandler.List)
			ratings.GET("/:id", ratingHandler.Get)
			ratings.POST("/:id/values", ratingHandler.AddValue)
		}

		// 热门榜单
		v1.GET("/top", ratingHandler.Top)
	}
}
