package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGenreWhitelists 测试创建侧与替换侧的体裁白名单不对称
func TestGenreWhitelists(t *testing.T) {
	t.Run("创建侧只接受窄集合", func(t *testing.T) {
		for _, g := range []string{
			"Fiction", "Children", "Biography", "Science",
			"Science Fiction", "Fantasy", "Other",
		} {
			assert.True(t, IsCreationGenre(g), "genre=%s", g)
		}

		// 宽集合里的值不能用于创建
		assert.False(t, IsCreationGenre("Romance"))
		assert.False(t, IsCreationGenre("True Crime"))
		assert.False(t, IsCreationGenre(""))
		assert.False(t, IsCreationGenre("fiction"), "大小写敏感")
	})

	t.Run("替换侧接受宽集合", func(t *testing.T) {
		assert.True(t, IsReplacementGenre("Romance"))
		assert.True(t, IsReplacementGenre("True Crime"))
		assert.True(t, IsReplacementGenre("Fiction"))
		assert.False(t, IsReplacementGenre("不存在的体裁"))

		// 创建侧的"Children"与"Other"不在替换侧集合内,
		// 不对称是双向的,保留源系统行为
		assert.False(t, IsReplacementGenre("Children"))
		assert.False(t, IsReplacementGenre("Other"))
	})

	t.Run("查询过滤沿用创建侧集合", func(t *testing.T) {
		assert.True(t, IsQueryGenre("Fantasy"))
		assert.False(t, IsQueryGenre("Romance"))
	})
}
