package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrMemberAtCapacity 会员借阅数量达到上限(2本)
	ErrMemberAtCapacity = apperrors.New(apperrors.ErrCodeCapacityLimit, "会员已借阅2本或更多图书")

	// ErrBookOnLoan 图书已被借出(一书一借)
	ErrBookOnLoan = apperrors.New(apperrors.ErrCodeConflict, "图书已被借出")

	// ErrMissingFields 必填字段缺失
	ErrMissingFields = apperrors.New(apperrors.ErrCodeValidation, "缺少必填字段")
)
