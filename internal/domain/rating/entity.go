package rating

import (
	"time"
)

// Rating 评分记录实体
// 设计说明:
// 1. 与图书一对一,通过BookID弱引用(仅用于查找,不拥有图书)
// 2. Values只追加,保留提交顺序(审计用途,聚合时顺序无意义)
// 3. Average是全量历史的算术平均,每次追加都从完整序列重新推导,
//    不是移动平均;序列为空时为0
// 4. Title是图书书名的冗余快照,图书后续改名不回写
// 5. 与图书同事务创建、同事务级联删除
type Rating struct {
	ID        uint
	BookID    uint    // 图书ID(弱引用)
	Title     string  // 书名快照(展示用)
	Values    []int   // 评分序列(1-5,只追加)
	Average   float64 // 算术平均(空序列为0)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRating 创建空评分记录(与图书创建同事务调用)
func NewRating(bookID uint, title string) *Rating {
	now := time.Now()
	return &Rating{
		BookID:    bookID,
		Title:     title,
		Values:    []int{},
		Average:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append 追加一个评分值并重新推导平均分(领域行为)
// 注意:取值范围校验(1-5)在service层完成,这里只负责追加和重算
func (r *Rating) Append(value int) {
	r.Values = append(r.Values, value)
	r.Average = mean(r.Values)
	r.UpdatedAt = time.Now()
}

// Qualifies 是否有资格进入热门榜单(至少3个评分值)
func (r *Rating) Qualifies() bool {
	return len(r.Values) >= minQualifyingValues
}

// mean 全量算术平均,空序列为0
func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
