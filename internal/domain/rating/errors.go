package rating

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 评分领域错误定义
var (
	// ErrRatingNotFound 评分记录不存在
	ErrRatingNotFound = apperrors.New(apperrors.ErrCodeRatingNotFound, "评分记录不存在")

	// ErrInvalidValue 评分值超出定义域(必须是1-5的整数)
	ErrInvalidValue = apperrors.New(apperrors.ErrCodeValidation, "无效的评分值")
)
