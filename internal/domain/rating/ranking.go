package rating

import (
	"sort"
)

// 热门图书榜单算法
// 设计说明:
// 1. 只有评分数>=3的记录有资格参与("合格记录")
// 2. 按平均分降序取前3;平均分相同时按BookID升序,保证结果可复现
// 3. 若合格记录多于3条,且第3名的平均分与后续记录并列,
//    并列者全部纳入,榜单可以超过3条;这是刻意保留的对外行为,
//    不是截断缺陷
// 4. 纯推导,无副作用;对同一输入重复计算结果相同(幂等)

const (
	// minQualifyingValues 进入榜单所需的最少评分数
	minQualifyingValues = 3

	// topSize 榜单基准条数(并列时实际条数可能更多)
	topSize = 3
)

// ComputeTop 从全量评分记录推导热门榜单
func ComputeTop(ratings []*Rating) []*Rating {
	// 1. 过滤合格记录
	qualified := make([]*Rating, 0, len(ratings))
	for _, r := range ratings {
		if r.Qualifies() {
			qualified = append(qualified, r)
		}
	}

	// 2. 平均分降序,BookID升序作为稳定次序
	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].Average != qualified[j].Average {
			return qualified[i].Average > qualified[j].Average
		}
		return qualified[i].BookID < qualified[j].BookID
	})

	// 3. 取前3作为基准榜单
	if len(qualified) <= topSize {
		return qualified
	}
	top := qualified[:topSize:topSize]

	// 4. 第3名的平均分与截断线外的记录并列时,并列者全部纳入
	cutoff := top[topSize-1].Average
	for _, r := range qualified[topSize:] {
		if r.Average == cutoff {
			top = append(top, r)
		}
	}

	return top
}
