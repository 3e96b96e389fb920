package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/library/pkg/metrics"
)

// slowRequestThreshold 慢请求告警阈值
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 设计说明：
// 1. 为每个请求生成唯一请求ID并回写X-Request-ID响应头，便于排查
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 同时上报Prometheus请求指标（路径取路由模板，避免标签爆炸）
func Logger(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)
		status := c.Writer.Status()

		// 指标标签用路由模板（/api/v1/books/:id），未匹配路由时退回原始路径
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.ObserveHTTPRequest(service, c.Request.Method, path, status, latency)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		statusColor := getStatusColor(status)
		methodColor := getMethodColor(c.Request.Method)
		resetColor := "\033[0m"

		fmt.Printf(
			statusColor+"[%s] %s | %3d | %13v | %15s | %-7s %s"+resetColor+" %s\n",
			service,
			time.Now().Format("2006/01/02 - 15:04:05"),
			status,
			latency,
			c.ClientIP(),
			methodColor+c.Request.Method+resetColor,
			c.Request.URL.Path,
			errMsg,
		)

		if latency > slowRequestThreshold {
			fmt.Printf("[WARN] Slow request: %s %s took %v (request_id=%s)\n",
				c.Request.Method,
				c.Request.URL.Path,
				latency,
				requestID,
			)
		}
	}
}

// getStatusColor 根据HTTP状态码返回终端颜色
func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "\033[32m" // 绿色
	case statusCode >= 300 && statusCode < 400:
		return "\033[36m" // 青色
	case statusCode >= 400 && statusCode < 500:
		return "\033[33m" // 黄色
	default:
		return "\033[31m" // 红色
	}
}

// getMethodColor 根据HTTP方法返回终端颜色
func getMethodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m"
	case "POST":
		return "\033[36m"
	case "PUT":
		return "\033[33m"
	case "DELETE":
		return "\033[31m"
	default:
		return "\033[0m"
	}
}
