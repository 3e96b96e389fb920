// Package catalogclient 实现借阅服务对图书服务的HTTP调用
//
// 借阅创建前必须到图书服务校验ISBN并取回书名/内部ID,
// 这是跨服务的同步依赖,带熔断与显式超时
package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// breaker 熔断器接口(pkg/circuitbreaker满足,测试可注入假实现)
type breaker interface {
	Execute(req func() error) error
}

// Client 图书服务客户端
// 设计说明:
// 1. 实现loan.CatalogClient接口
// 2. 长生命周期客户端+单次调用超时,复用连接池
// 3. 所有失败(网络错误、超时、非200、空结果、熔断打开)
//    统一包装为依赖错误,对外表现一致;调用方可整体重试
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	cb         breaker
}

// NewClient 创建图书服务客户端
func NewClient(baseURL string, timeout time.Duration, cb breaker) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		cb:         cb,
	}
}

// bookItem 匹配图书服务 GET /api/v1/books?ISBN=xxx 响应体中的单条记录
type bookItem struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// listResponse 图书服务的统一响应信封
type listResponse struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    []bookItem `json:"data"`
}

// FindByISBN 根据ISBN到图书服务查询图书摘要
// 任何失败返回依赖错误(50300),不区分失败原因对外暴露
func (c *Client) FindByISBN(ctx context.Context, isbn string) (loan.BookSummary, error) {
	var summary loan.BookSummary

	err := c.cb.Execute(func() error {
		found, execErr := c.doFind(ctx, isbn, &summary)
		if execErr != nil {
			return execErr
		}
		if !found {
			return fmt.Errorf("图书服务无ISBN %s 的记录", isbn)
		}
		return nil
	})
	if err != nil {
		metrics.IncCatalogCallFailure()
		return loan.BookSummary{}, apperrors.WrapDependency(err, "图书服务校验ISBN失败")
	}

	return summary, nil
}

// doFind 发起一次查询,found=false表示图书服务无匹配记录
func (c *Client) doFind(ctx context.Context, isbn string, out *loan.BookSummary) (bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s/api/v1/books?ISBN=%s", c.baseURL, url.QueryEscape(isbn))

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("请求图书服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("图书服务返回非成功状态: %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("解析图书服务响应失败: %w", err)
	}

	if len(body.Data) == 0 {
		return false, nil
	}

	out.ID = body.Data[0].ID
	out.Title = body.Data[0].Title
	return true, nil
}
