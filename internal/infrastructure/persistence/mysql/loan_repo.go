package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. loans.isbn唯一索引是"一书一借"的存储层兜底,
//    重复插入映射为ErrBookOnLoan
// 2. 归还即物理删除,释放唯一索引
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		LoanNo:     l.LoanNo,
		MemberName: l.MemberName,
		ISBN:       l.ISBN,
		Title:      l.Title,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return loan.ErrBookOnLoan
		}
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt

	return nil
}

// FindByLoanNo 根据借阅单号查找
func (r *loanRepository) FindByLoanNo(ctx context.Context, loanNo string) (*loan.Loan, error) {
	var model LoanModel
	err := dbFrom(ctx, r.db).Where("loan_no = ?", loanNo).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// DeleteByLoanNo 删除借阅记录(归还)
func (r *loanRepository) DeleteByLoanNo(ctx context.Context, loanNo string) error {
	result := dbFrom(ctx, r.db).Where("loan_no = ?", loanNo).Delete(&LoanModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除借阅记录失败")
	}
	if result.RowsAffected == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

// CountByMember 统计会员当前借阅数量
func (r *loanRepository) CountByMember(ctx context.Context, memberName string) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&LoanModel{}).
		Where("member_name = ?", memberName).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计借阅数量失败")
	}
	return count, nil
}

// ExistsByISBN 某ISBN是否存在在借记录
func (r *loanRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&LoanModel{}).
		Where("isbn = ?", isbn).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询在借状态失败")
	}
	return count > 0, nil
}

// Query 条件查询借阅记录(全部精确匹配,AND关系)
func (r *loanRepository) Query(ctx context.Context, q loan.Query) ([]*loan.Loan, error) {
	db := dbFrom(ctx, r.db).Model(&LoanModel{})

	if q.MemberName != "" {
		db = db.Where("member_name = ?", q.MemberName)
	}
	if q.ISBN != "" {
		db = db.Where("isbn = ?", q.ISBN)
	}
	if q.LoanDate != "" {
		db = db.Where("loan_date = ?", q.LoanDate)
	}

	var models []LoanModel
	if err := db.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}
	return loans, nil
}

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(m *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:         m.ID,
		LoanNo:     m.LoanNo,
		MemberName: m.MemberName,
		ISBN:       m.ISBN,
		Title:      m.Title,
		BookID:     m.BookID,
		LoanDate:   m.LoanDate,
		CreatedAt:  m.CreatedAt,
	}
}
