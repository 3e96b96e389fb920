package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeConflict, "ISBN号已存在")

	// ErrInvalidGenre 体裁不在白名单内
	ErrInvalidGenre = apperrors.New(apperrors.ErrCodeValidation, "无效的体裁")

	// ErrMissingFields 必填字段缺失
	ErrMissingFields = apperrors.New(apperrors.ErrCodeValidation, "缺少必填字段")
)
