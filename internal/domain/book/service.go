package book

import (
	"context"
	"errors"
	"log"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 图书领域服务
// 设计说明:
// 1. 封装创建/替换/删除/查询的业务规则校验
// 2. 图书与评分记录的生命周期耦合:创建和删除在同一事务中级联
// 3. 写操作成功后同步触发热门榜单重算
type Service struct {
	repo     Repository
	enricher Enricher
	ratings  RatingLedger
	tx       TxRunner
}

// NewService 创建图书领域服务
func NewService(repo Repository, enricher Enricher, ratings RatingLedger, tx TxRunner) *Service {
	return &Service{
		repo:     repo,
		enricher: enricher,
		ratings:  ratings,
		tx:       tx,
	}
}

// Create 创建图书
// 业务规则:
// - title/isbn/genre必填,genre必须在创建侧白名单(7个值)内
// - ISBN不能重复
// - 作者/出版社/出版日期以外部书目数据为准,调用方提交的值被忽略
// - 书目补全失败则整个操作失败,不产生任何写入
// - 图书与空评分记录在同一事务中创建
func (s *Service) Create(ctx context.Context, title, isbn, genre string) (*Book, error) {
	// 1. 必填字段与体裁校验
	if title == "" || isbn == "" || genre == "" {
		return nil, ErrMissingFields
	}
	if !IsCreationGenre(genre) {
		return nil, ErrInvalidGenre
	}

	// 2. ISBN重复检查
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrISBNDuplicate
	}

	// 3. 外部书目数据补全(任何失败都在写入前发生,无需补偿)
	enriched, err := s.enricher.Enrich(ctx, isbn)
	if err != nil {
		return nil, apperrors.WrapDependency(err, "获取外部书目数据失败")
	}

	// 4. 图书与空评分记录在同一事务中落库
	b := NewBook(title, isbn, genre, enriched)
	err = s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, b); err != nil {
			return err
		}
		return s.ratings.CreateFor(txCtx, b.ID, b.Title)
	})
	if err != nil {
		return nil, err
	}

	// 5. 重算热门榜单
	// 新建图书评分为空,重算结果不变,但保持触发点对称(重算是幂等的)
	// 榜单缓存是衍生数据,重算失败不回滚已提交的创建,下次变更时自愈
	if err := s.ratings.Recompute(ctx); err != nil {
		log.Printf("[WARN] 创建图书后重算榜单失败: %v", err)
	}

	return b, nil
}

// Get 根据ID获取图书
func (s *Service) Get(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ReplaceData 整体替换的输入(六个字段全部必填)
type ReplaceData struct {
	Title         string
	Authors       string
	ISBN          string
	Publisher     string
	PublishedDate string
	Genre         string
}

// Replace 整体替换图书记录
// 业务规则:
// - 先查存在性再校验字段:不存在的ID即便请求体不完整也返回未找到
// - 六个字段全部必填,genre必须在替换侧白名单(60个值)内
// - 不调用外部补全,调用方数据原样信任(与创建不对称)
// - 不回写评分记录上冗余的书名快照
func (s *Service) Replace(ctx context.Context, id uint, data ReplaceData) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data.Title == "" || data.Authors == "" || data.ISBN == "" ||
		data.Publisher == "" || data.PublishedDate == "" || data.Genre == "" {
		return nil, ErrMissingFields
	}
	if !IsReplacementGenre(data.Genre) {
		return nil, ErrInvalidGenre
	}

	b.ReplaceWith(data.Title, data.Authors, data.ISBN,
		data.Publisher, data.PublishedDate, data.Genre)

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Delete 删除图书
// 业务规则:
// - 级联删除对应的评分记录(同一事务)
// - 删除后同步重算热门榜单
// - 重复删除返回ErrBookNotFound(不保证幂等)
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.FindByID(txCtx, id); err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.ratings.DeleteFor(txCtx, id)
	})
	if err != nil {
		return err
	}

	if err := s.ratings.Recompute(ctx); err != nil {
		log.Printf("[WARN] 删除图书后重算榜单失败: %v", err)
	}

	return nil
}

// List 条件查询图书
// genre过滤值不在白名单内时立即返回校验错误,其余条件不做白名单限制
func (s *Service) List(ctx context.Context, q Query) ([]*Book, error) {
	if q.Genre != "" && !IsQueryGenre(q.Genre) {
		return nil, ErrInvalidGenre
	}
	return s.repo.Query(ctx, q)
}
