package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书(ISBN重复时返回ErrISBNDuplicate)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息(整体替换)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(不存在时返回ErrBookNotFound)
	Delete(ctx context.Context, id uint) error

	// Query 条件查询图书
	// 过滤条件相互独立且为AND关系,全部为空时返回所有记录
	Query(ctx context.Context, q Query) ([]*Book, error)
}

// Query 图书查询条件
// 匹配语义:
// - Title/Authors/Publisher: 大小写不敏感的子串匹配
// - ISBN/PublishedDate/Genre: 精确匹配
type Query struct {
	Title         string
	Authors       string
	ISBN          string
	Publisher     string
	PublishedDate string
	Genre         string
}

// IsEmpty 是否无任何过滤条件
func (q Query) IsEmpty() bool {
	return q == Query{}
}

// Enricher 外部书目数据补全接口
// 设计说明:
// 1. books服务创建图书时以外部书目源(Google Books)的数据为准
// 2. 接口由domain层定义,infrastructure/googlebooks实现,测试注入假实现
// 3. 任何失败(网络错误、无结果)在service层统一包装为依赖错误,不产生部分写入
type Enricher interface {
	Enrich(ctx context.Context, isbn string) (Enrichment, error)
}

// RatingLedger 评分台账接口(图书生命周期的联动方)
// 设计说明:
// 1. 图书创建/删除时级联创建/删除对应的评分记录
// 2. CreateFor/DeleteFor需与图书写入在同一事务中执行(通过ctx传递事务)
// 3. Recompute在事务提交后同步触发,重算热门图书榜单
type RatingLedger interface {
	CreateFor(ctx context.Context, bookID uint, title string) error
	DeleteFor(ctx context.Context, bookID uint) error
	Recompute(ctx context.Context) error
}

// TxRunner 事务执行器接口
// 由infrastructure/persistence/mysql.TxManager实现
type TxRunner interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
