package rating

import (
	"context"
)

// Repository 评分仓储接口
// 由domain层定义,infrastructure层实现;写操作通过ctx参与图书服务的事务
type Repository interface {
	// Create 创建评分记录(图书创建时同事务调用)
	Create(ctx context.Context, rating *Rating) error

	// FindByBookID 根据图书ID查找评分记录
	FindByBookID(ctx context.Context, bookID uint) (*Rating, error)

	// Update 持久化追加评分后的记录
	Update(ctx context.Context, rating *Rating) error

	// DeleteByBookID 删除评分记录(图书删除时同事务级联调用)
	DeleteByBookID(ctx context.Context, bookID uint) error

	// FindAll 获取全部评分记录(榜单重算的数据来源)
	FindAll(ctx context.Context) ([]*Rating, error)
}

// TopStore 热门榜单快照存储接口
// 设计说明:
// 1. 榜单是衍生数据的顾问性缓存,不是事实来源;并发重算时后写覆盖先写,
//    下一次触发变更时自愈
// 2. 由infrastructure/persistence/redis实现
type TopStore interface {
	// Save 写入榜单快照
	Save(ctx context.Context, entries []*Rating) error

	// Load 读取榜单快照;第二个返回值为false表示缓存未命中
	Load(ctx context.Context) ([]*Rating, bool, error)
}
