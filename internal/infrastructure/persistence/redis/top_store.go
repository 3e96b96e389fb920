package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/rating"
)

// topBooksKey 热门榜单快照的键
const topBooksKey = "library:top:books"

// TopBooksStore 热门榜单快照存储(Redis)
// 设计说明:
// 1. 实现rating.TopStore接口
// 2. 榜单是衍生数据的顾问性缓存:每次评分/图书变更后被同步覆写,
//    读路径未命中时由调用方从权威数据重算回填
// 3. 不设TTL:快照只被覆写,过期语义没有意义;
//    陈旧只可能来自并发重算的后写覆盖,下一次变更时自愈
type TopBooksStore struct {
	client *redis.Client
}

// NewTopBooksStore 创建榜单快照存储
func NewTopBooksStore(client *redis.Client) *TopBooksStore {
	return &TopBooksStore{client: client}
}

// topEntry 快照序列化结构
type topEntry struct {
	BookID  uint    `json:"bookId"`
	Title   string  `json:"title"`
	Values  []int   `json:"values"`
	Average float64 `json:"average"`
}

// Save 写入榜单快照(整体覆写)
func (s *TopBooksStore) Save(ctx context.Context, entries []*rating.Rating) error {
	snapshot := make([]topEntry, len(entries))
	for i, r := range entries {
		snapshot[i] = topEntry{
			BookID:  r.BookID,
			Title:   r.Title,
			Values:  r.Values,
			Average: r.Average,
		}
	}

	val, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("序列化榜单快照失败: %w", err)
	}

	if err := s.client.Set(ctx, topBooksKey, val, 0).Err(); err != nil {
		return fmt.Errorf("写入榜单快照失败: %w", err)
	}

	return nil
}

// Load 读取榜单快照;第二个返回值为false表示缓存未命中
func (s *TopBooksStore) Load(ctx context.Context) ([]*rating.Rating, bool, error) {
	val, err := s.client.Get(ctx, topBooksKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("读取榜单快照失败: %w", err)
	}

	var snapshot []topEntry
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, false, fmt.Errorf("反序列化榜单快照失败: %w", err)
	}

	entries := make([]*rating.Rating, len(snapshot))
	for i, e := range snapshot {
		entries[i] = &rating.Rating{
			BookID:  e.BookID,
			Title:   e.Title,
			Values:  e.Values,
			Average: e.Average,
		}
	}

	return entries, true, nil
}
