package loan

import (
	"github.com/google/uuid"
)

// GenerateLoanNo 生成借阅单号
// 单号设计原则:
// 1. 全局唯一(避免冲突)
// 2. 不透明、不可预测(防止恶意遍历)
//
// 使用UUID v4,示例:9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d
func GenerateLoanNo() string {
	return uuid.New().String()
}
