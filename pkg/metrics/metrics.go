// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型：
// - Counter（计数器）：只增不减，如HTTP请求总数
// - Histogram（直方图）：观测值分布，自动计算分位数，如请求耗时
//
// 指标通过/metrics端点暴露，由Prometheus定期抓取
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequestsTotal HTTP请求总数（按服务、方法、路径、状态码区分）
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	// httpRequestDuration HTTP请求耗时分布
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "library_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	// topBooksRecomputeDuration 热门图书榜单重算耗时
	// 每次评分提交/图书增删后同步重算，耗时异常说明评分表过大或Redis写入变慢
	topBooksRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "library_top_books_recompute_duration_seconds",
			Help:    "Duration of top books view recomputation.",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1},
		},
	)

	// catalogCallFailures 借阅服务调用图书服务失败次数
	catalogCallFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_catalog_call_failures_total",
			Help: "Total number of failed calls to the books service.",
		},
	)
)

// ObserveHTTPRequest 记录一次HTTP请求
func ObserveHTTPRequest(service, method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

// ObserveTopBooksRecompute 记录一次榜单重算耗时
func ObserveTopBooksRecompute(duration time.Duration) {
	topBooksRecomputeDuration.Observe(duration.Seconds())
}

// IncCatalogCallFailure 记录一次图书服务调用失败
func IncCatalogCallFailure() {
	catalogCallFailures.Inc()
}

// Handler 返回/metrics端点的HTTP处理器
// 用法（gin）：r.GET("/metrics", gin.WrapH(metrics.Handler()))
func Handler() http.Handler {
	return promhttp.Handler()
}
