package loan

import (
	"time"
)

// Loan 借阅记录实体(聚合根)
// 设计说明:
// 1. LoanNo是对外的借阅单号(UUID,全局唯一,创建时生成)
// 2. Title/BookID是创建时从图书服务取回的时点快照,
//    图书后续被修改不回写(冗余字段会漂移,这是既定语义)
// 3. 没有更新操作:借阅记录要么存在(在借),要么被删除(已归还)
// 4. 借阅状态是隐式的:某ISBN存在借阅记录即"在借",
//    某会员的记录数>=2即"达到上限"
type Loan struct {
	ID         uint
	LoanNo     string // 借阅单号(UUID,业务主键)
	MemberName string // 会员名
	ISBN       string // 图书ISBN
	Title      string // 书名快照(借出时点)
	BookID     uint   // 图书服务内部ID快照
	LoanDate   string // 借出日期(调用方提交,原样存储)
	CreatedAt  time.Time
}

// NewLoan 创建借阅记录(工厂方法)
// 参数说明:
// - title/bookID来自图书服务的查询结果(时点快照)
// - 借阅单号在工厂内生成,调用方不可指定
func NewLoan(memberName, isbn, loanDate, title string, bookID uint) *Loan {
	return &Loan{
		LoanNo:     GenerateLoanNo(),
		MemberName: memberName,
		ISBN:       isbn,
		Title:      title,
		BookID:     bookID,
		LoanDate:   loanDate,
		CreatedAt:  time.Now(),
	}
}
