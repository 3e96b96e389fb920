package googlebooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthorsString 测试作者展示字符串的拼接规则
func TestAuthorsString(t *testing.T) {
	cases := []struct {
		name    string
		authors []string
		want    string
	}{
		{"无作者补missing", nil, "missing"},
		{"空列表补missing", []string{}, "missing"},
		{"单作者原样返回", []string{"A"}, "A"},
		{"双作者and拼接", []string{"A", "B"}, "A and B"},
		{"三作者逐个and拼接", []string{"A", "B", "C"}, "A and B and C"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, AuthorsString(c.authors))
		})
	}
}

// TestClient_Enrich 测试书目补全
func TestClient_Enrich(t *testing.T) {
	ctx := context.Background()

	t.Run("解析第一条结果的volumeInfo", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/books/v1/volumes", r.URL.Path)
			assert.Equal(t, "isbn:9780135957059", r.URL.Query().Get("q"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"totalItems": 2,
				"items": [
					{"volumeInfo": {
						"title": "The Pragmatic Programmer",
						"authors": ["David Thomas", "Andrew Hunt"],
						"publisher": "Addison-Wesley",
						"publishedDate": "2019-09-13"
					}},
					{"volumeInfo": {"title": "另一条结果"}}
				]
			}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 2*time.Second, 100)
		enriched, err := client.Enrich(ctx, "9780135957059")
		require.NoError(t, err)
		assert.Equal(t, "The Pragmatic Programmer", enriched.Title)
		assert.Equal(t, "David Thomas and Andrew Hunt", enriched.Authors)
		assert.Equal(t, "Addison-Wesley", enriched.Publisher)
		assert.Equal(t, "2019-09-13", enriched.PublishedDate)
	})

	t.Run("缺失字段补missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"totalItems": 1, "items": [{"volumeInfo": {"title": "只有书名"}}]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 2*time.Second, 100)
		enriched, err := client.Enrich(ctx, "978X")
		require.NoError(t, err)
		assert.Equal(t, "只有书名", enriched.Title)
		assert.Equal(t, "missing", enriched.Authors)
		assert.Equal(t, "missing", enriched.Publisher)
		assert.Equal(t, "missing", enriched.PublishedDate)
	})

	t.Run("空结果集是失败而不是空数据", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"totalItems": 0}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 2*time.Second, 100)
		_, err := client.Enrich(ctx, "978X")
		assert.Error(t, err)
	})

	t.Run("非200状态返回错误", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 2*time.Second, 100)
		_, err := client.Enrich(ctx, "978X")
		assert.Error(t, err)
	})

	t.Run("超时返回错误", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{"totalItems": 0}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 50*time.Millisecond, 100)
		_, err := client.Enrich(ctx, "978X")
		assert.Error(t, err)
	})
}
