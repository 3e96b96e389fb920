// Package googlebooks 实现基于Google Books API的书目数据补全
//
// books服务创建图书时以此为权威书目来源:调用方提交的作者/出版社/
// 出版日期会被这里返回的数据覆盖
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xiebiao/library/internal/domain/book"
)

// defaultBaseURL Google Books API地址
const defaultBaseURL = "https://www.googleapis.com"

// missingField 字段缺失时的占位值(对外行为的一部分,不要改)
const missingField = "missing"

// Client Google Books API客户端
// 设计说明:
// 1. 实现book.Enricher接口
// 2. 显式超时+限速:外部API故障不能拖垮创建流程,
//    任何失败由调用方统一包装为依赖错误
// 3. 不做自动重试,重试是调用方的决定
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewClient 创建客户端
// baseURL为空时使用官方地址;rps<=0时默认每秒1次
func NewClient(baseURL string, timeout time.Duration, rps int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
	}
}

// volumesResponse 匹配 GET /books/v1/volumes?q=isbn:xxx 的响应
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Enrich 根据ISBN解析书目数据
// 规则:
// - 取第一条结果的volumeInfo
// - 缺失字段补"missing"
// - 多个作者以" and "拼接为展示字符串
// - 网络错误、非200、空结果集都返回错误(无结果不是"空数据"而是失败)
func (c *Client) Enrich(ctx context.Context, isbn string) (book.Enrichment, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return book.Enrichment{}, err
	}

	reqURL := fmt.Sprintf("%s/books/v1/volumes?q=%s",
		c.baseURL, url.QueryEscape("isbn:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return book.Enrichment{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return book.Enrichment{}, fmt.Errorf("请求Google Books失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return book.Enrichment{}, fmt.Errorf("Google Books返回非成功状态: %d", resp.StatusCode)
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return book.Enrichment{}, fmt.Errorf("解析Google Books响应失败: %w", err)
	}

	if len(body.Items) == 0 {
		return book.Enrichment{}, fmt.Errorf("ISBN %s 无书目数据", isbn)
	}

	info := body.Items[0].VolumeInfo
	return book.Enrichment{
		Title:         orMissing(info.Title),
		Authors:       AuthorsString(info.Authors),
		Publisher:     orMissing(info.Publisher),
		PublishedDate: orMissing(info.PublishedDate),
	}, nil
}

// AuthorsString 作者列表 → 展示字符串
// 规则(对外行为的一部分):
// - 空/缺失 → "missing"
// - 单作者 → 原名
// - 多作者 → 以" and "逐个拼接
func AuthorsString(authors []string) string {
	switch len(authors) {
	case 0:
		return missingField
	case 1:
		return authors[0]
	default:
		return strings.Join(authors, " and ")
	}
}

// orMissing 空字段补占位值
func orMissing(s string) string {
	if s == "" {
		return missingField
	}
	return s
}
