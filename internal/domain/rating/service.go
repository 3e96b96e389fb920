package rating

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/pkg/metrics"
)

// Service 评分台账领域服务
// 设计说明:
// 1. 拥有评分序列的追加和平均分推导
// 2. 生命周期操作(CreateFor/DeleteFor)由图书服务在同一事务中调用,
//    实现book.RatingLedger接口
// 3. 每次评分变更后同步重算热门榜单并写入快照存储
type Service struct {
	repo Repository
	top  TopStore
}

// NewService 创建评分领域服务
func NewService(repo Repository, top TopStore) *Service {
	return &Service{
		repo: repo,
		top:  top,
	}
}

// RecordValue 记录一次评分提交
// 业务规则:
// - value必须是1-5的整数,否则返回校验错误
// - 评分记录不存在返回ErrRatingNotFound
// - 平均分从完整序列重新推导(非移动平均)
// - 持久化成功后同步重算热门榜单,返回新的平均分
func (s *Service) RecordValue(ctx context.Context, bookID uint, value int) (float64, error) {
	if value < 1 || value > 5 {
		return 0, ErrInvalidValue
	}

	r, err := s.repo.FindByBookID(ctx, bookID)
	if err != nil {
		return 0, err
	}

	r.Append(value)

	if err := s.repo.Update(ctx, r); err != nil {
		return 0, err
	}

	// 榜单快照是顾问性缓存,重算失败不使已提交的评分失败:
	// 此时向客户端报错会诱发重试,重复追加评分值;快照下次变更时自愈
	if err := s.Recompute(ctx); err != nil {
		log.Printf("[WARN] 评分提交后重算榜单失败: %v", err)
	}

	return r.Average, nil
}

// GetByBookID 获取某图书的评分记录
func (s *Service) GetByBookID(ctx context.Context, bookID uint) (*Rating, error) {
	return s.repo.FindByBookID(ctx, bookID)
}

// ListAll 获取全部评分记录
func (s *Service) ListAll(ctx context.Context) ([]*Rating, error) {
	return s.repo.FindAll(ctx)
}

// TopBooks 获取热门榜单
// 优先读快照缓存;未命中时从权威评分数据重算并回填
func (s *Service) TopBooks(ctx context.Context) ([]*Rating, error) {
	entries, ok, err := s.top.Load(ctx)
	if err == nil && ok {
		return entries, nil
	}

	// 缓存未命中或不可用,从权威数据重算
	ratings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	entries = ComputeTop(ratings)

	// 回填失败不影响本次读取
	_ = s.top.Save(ctx, entries)

	return entries, nil
}

// Recompute 重算热门榜单并写入快照
// 设计说明:
// 1. 评分提交、图书增删后同步触发
// 2. 幂等:无中间变更时连续两次重算结果一致
// 3. 并发触发时各自从自己读到的数据重算,快照后写覆盖先写;
//    榜单是顾问性缓存,下一次变更时自愈,可接受
func (s *Service) Recompute(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.ObserveTopBooksRecompute(time.Since(start))
	}()

	ratings, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	return s.top.Save(ctx, ComputeTop(ratings))
}

// CreateFor 为新图书创建空评分记录(实现book.RatingLedger)
// 必须与图书创建在同一事务中调用
func (s *Service) CreateFor(ctx context.Context, bookID uint, title string) error {
	return s.repo.Create(ctx, NewRating(bookID, title))
}

// DeleteFor 级联删除图书对应的评分记录(实现book.RatingLedger)
// 必须与图书删除在同一事务中调用
func (s *Service) DeleteFor(ctx context.Context, bookID uint) error {
	return s.repo.DeleteByBookID(ctx, bookID)
}
