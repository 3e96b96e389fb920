package loan

import (
	"context"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/keylock"
)

// 借阅资格规则
const (
	// maxLoansPerMember 单个会员可同时借阅的上限
	maxLoansPerMember = 2
)

// Service 借阅台账领域服务
// 设计说明:
// 1. 资格约束(会员上限2本、一书一借)是"先查后写"的业务不变量,
//    不是表结构约束;并发创建必须串行化,否则两个请求可以同时通过
//    检查再先后写入,突破上限
// 2. 串行化方案:按会员名和ISBN各取一把命名锁,检查+远程校验+插入
//    全程持锁;加锁顺序固定为先会员后ISBN,避免死锁
// 3. loans.isbn的唯一索引作为存储层兜底
type Service struct {
	repo    Repository
	catalog CatalogClient
	locks   *keylock.KeyLock
}

// NewService 创建借阅领域服务
func NewService(repo Repository, catalog CatalogClient) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		locks:   keylock.New(),
	}
}

// Create 创建借阅记录
// 业务规则(按序校验,任一失败都不产生写入):
// 1. memberName/isbn/loanDate必填
// 2. 会员已有>=2条借阅记录 → 上限错误
// 3. ISBN已有在借记录 → 冲突错误
// 4. 调用图书服务校验ISBN;失败、超时、无结果 → 依赖错误
// 5. 生成借阅单号,落库书名/图书ID时点快照,返回单号
func (s *Service) Create(ctx context.Context, memberName, isbn, loanDate string) (*Loan, error) {
	if memberName == "" || isbn == "" || loanDate == "" {
		return nil, ErrMissingFields
	}

	// 串行化资格检查与插入(先会员锁后ISBN锁,顺序固定)
	memberKey := "member:" + memberName
	isbnKey := "isbn:" + isbn
	s.locks.Lock(memberKey)
	defer s.locks.Unlock(memberKey)
	s.locks.Lock(isbnKey)
	defer s.locks.Unlock(isbnKey)

	// 1. 会员借阅上限
	count, err := s.repo.CountByMember(ctx, memberName)
	if err != nil {
		return nil, err
	}
	if count >= maxLoansPerMember {
		return nil, ErrMemberAtCapacity
	}

	// 2. 一书一借
	onLoan, err := s.repo.ExistsByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if onLoan {
		return nil, ErrBookOnLoan
	}

	// 3. 图书服务校验ISBN并取回书名/内部ID
	// 失败发生在任何写入之前,无需补偿;客户端可整体重试
	summary, err := s.catalog.FindByISBN(ctx, isbn)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodeDependencyError) {
			return nil, err
		}
		return nil, apperrors.WrapDependency(err, "查询图书服务失败")
	}

	// 4. 落库(唯一索引兜底一书一借)
	l := NewLoan(memberName, isbn, loanDate, summary.Title, summary.ID)
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// Get 根据借阅单号获取借阅记录
func (s *Service) Get(ctx context.Context, loanNo string) (*Loan, error) {
	return s.repo.FindByLoanNo(ctx, loanNo)
}

// Delete 归还(删除借阅记录)
// 纯删除,无级联:记录消失即图书可再次被借出,评分/图书状态不受影响
func (s *Service) Delete(ctx context.Context, loanNo string) error {
	if _, err := s.repo.FindByLoanNo(ctx, loanNo); err != nil {
		return err
	}
	return s.repo.DeleteByLoanNo(ctx, loanNo)
}

// List 条件查询借阅记录
func (s *Service) List(ctx context.Context, q Query) ([]*Loan, error) {
	return s.repo.Query(ctx, q)
}
