package loan

import (
	"context"
)

// Repository 借阅仓储接口
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. loans表的isbn列有唯一索引:即使资格检查出现并发缝隙,
//    存储层也会拒绝第二条同ISBN的记录(实现需将重复错误映射为ErrBookOnLoan)
type Repository interface {
	// Create 创建借阅记录(同ISBN已有记录时返回ErrBookOnLoan)
	Create(ctx context.Context, loan *Loan) error

	// FindByLoanNo 根据借阅单号查找
	FindByLoanNo(ctx context.Context, loanNo string) (*Loan, error)

	// DeleteByLoanNo 删除借阅记录(归还),不存在时返回ErrLoanNotFound
	DeleteByLoanNo(ctx context.Context, loanNo string) error

	// CountByMember 统计会员当前的借阅数量
	CountByMember(ctx context.Context, memberName string) (int64, error)

	// ExistsByISBN 某ISBN是否存在在借记录
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Query 条件查询借阅记录(全部精确匹配,AND关系,空条件返回全部)
	Query(ctx context.Context, q Query) ([]*Loan, error)
}

// Query 借阅查询条件(精确匹配)
type Query struct {
	MemberName string
	ISBN       string
	LoanDate   string
}

// BookSummary 图书服务查询接口返回的图书摘要
type BookSummary struct {
	ID    uint
	Title string
}

// CatalogClient 图书服务客户端接口
// 设计说明:
// 1. 借阅创建依赖图书服务校验ISBN并取回书名/内部ID
// 2. 接口由domain层定义,infrastructure/catalogclient实现,
//    测试注入假实现,借阅逻辑的测试不依赖真实网络
// 3. 实现必须带显式超时;超时、非成功状态、空结果统一表现为依赖错误
type CatalogClient interface {
	FindByISBN(ctx context.Context, isbn string) (BookSummary, error)
}
