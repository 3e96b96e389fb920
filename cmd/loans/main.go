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

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/infrastructure/catalogclient"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// serviceName 日志与指标中的服务标识
const serviceName = "loans"

// main loans服务入口
func main() {
	// 1. 加载配置
	cfg, err := config.LoadLoans()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - 图书服务: %s\n", cfg.Catalog.BaseURL)

	// 2. 初始化数据库连接(含loans表迁移)
	db, err := mysql.NewLoansDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 依赖注入(手动组装)

	// 图书服务客户端:熔断器包住每次调用,连续失败达到阈值后快速失败
	cb := circuitbreaker.New("books-service", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     cfg.Catalog.OpenTimeout,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Catalog.MaxFailures
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("[WARN] 熔断器%s状态变化: %s → %s", name, from, to)
	})
	catalog := catalogclient.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, cb)

	loanRepo := mysql.NewLoanRepository(db)
	loanService := loan.NewService(loanRepo, catalog)
	loanHandler := handler.NewLoanHandler(loanService)

	// 4. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(serviceName))
	r.Use(middleware.CORS())

	// 5. 注册路由
	registerRoutes(r, loanHandler)

	// 6. 启动服务(优雅关闭)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 loans服务启动成功！\n")
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
func registerRoutes(r *gin.Engine, loanHandler *handler.LoanHandler) {
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
		loans := v1.Group("/loans")
		{
			loans.POST("", loanHandler.Create)
			loans.GET("", loanHandler.List)
			loans.GET("/:loanID", loanHandler.Get)
			loans.DELETE("/:loanID", loanHandler.Delete)
		}
	}
}
