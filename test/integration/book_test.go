package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
//
// 覆盖场景:
// 1. 创建(含外部书目补全) → 查询 → 替换 → 删除的完整生命周期
// 2. 评分记录随图书创建/删除联动
// 3. 体裁白名单与参数校验
//
// 测试ISBN使用真实存在的书,创建接口会到外部书目源取作者/出版社/出版日期

// testISBN 《The Go Programming Language》
const testISBN = "9780134190440"

// TestBookLifecycle 测试图书完整生命周期
func TestBookLifecycle(t *testing.T) {
	base := booksBaseURL(t)

	bookID := CreateTestBook(t, base, "Go程序设计语言", testISBN, "Science")
	t.Logf("✓ 创建成功,图书ID: %d", bookID)

	t.Run("创建后书目字段来自外部数据源", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID))
		require.Equal(t, 0, resp.Code)

		var book BookData
		require.NoError(t, json.Unmarshal(resp.Data, &book))
		assert.Equal(t, "Go程序设计语言", book.Title, "书名信任调用方")
		assert.Equal(t, testISBN, book.ISBN)
		assert.NotEmpty(t, book.Authors, "作者由外部数据补全")
		assert.NotEqual(t, "missing", book.Authors, "该ISBN有完整书目数据")
	})

	t.Run("创建后空评分记录同步存在", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/ratings/%d", base, bookID))
		require.Equal(t, 0, resp.Code)

		var rating RatingData
		require.NoError(t, json.Unmarshal(resp.Data, &rating))
		assert.Equal(t, bookID, rating.BookID)
		assert.Empty(t, rating.Values)
		assert.Equal(t, float64(0), rating.Average)
	})

	t.Run("按id过滤评分列表返回单个对象", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/ratings?id=%d", base, bookID))
		require.Equal(t, 0, resp.Code)

		// data是对象而非单元素数组
		var rating RatingData
		require.NoError(t, json.Unmarshal(resp.Data, &rating))
		assert.Equal(t, bookID, rating.BookID)
	})

	t.Run("提交评分后返回新平均分", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/ratings/%d/values", base, bookID),
			map[string]int{"value": 5})
		require.Equal(t, 0, resp.Code)

		var result struct {
			Average float64 `json:"average"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &result))
		assert.Equal(t, float64(5), result.Average)
	})

	t.Run("整体替换信任调用方数据", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), map[string]string{
			"title":         "替换后的书名",
			"authors":       "替换后的作者",
			"ISBN":          testISBN,
			"publisher":     "替换后的出版社",
			"publishedDate": "2020",
			"genre":         "Technology", // 宽集合的值,创建侧不接受
		})
		require.Equal(t, 0, resp.Code, "替换失败: %s", resp.Message)

		var book BookData
		require.NoError(t, json.Unmarshal(resp.Data, &book))
		assert.Equal(t, "替换后的作者", book.Authors, "替换不走外部补全")
		assert.Equal(t, "Technology", book.Genre)
	})

	t.Run("删除后图书与评分记录一并消失", func(t *testing.T) {
		resp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", base, bookID))
		require.Equal(t, 0, resp.Code)

		getResp := GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID))
		assert.Equal(t, 40405, getResp.Code, "图书应已不存在")

		ratingResp := GetJSON(t, fmt.Sprintf("%s/ratings/%d", base, bookID))
		assert.Equal(t, 40406, ratingResp.Code, "评分记录应已级联删除")
	})
}

// TestBookValidation 测试创建与查询的参数校验
func TestBookValidation(t *testing.T) {
	base := booksBaseURL(t)

	t.Run("缺少必填字段", func(t *testing.T) {
		resp := PostJSON(t, base+"/books", map[string]string{
			"title": "没有ISBN的书",
			"genre": "Fiction",
		})
		assert.Equal(t, 42200, resp.Code)
	})

	t.Run("体裁不在创建侧白名单", func(t *testing.T) {
		resp := PostJSON(t, base+"/books", map[string]string{
			"title": "体裁非法的书",
			"ISBN":  testISBN,
			"genre": "Romance", // 只在替换侧白名单内
		})
		assert.Equal(t, 42200, resp.Code)
	})

	t.Run("重复ISBN返回冲突", func(t *testing.T) {
		bookID := CreateTestBook(t, base, "第一本", testISBN, "Fiction")
		defer DeleteJSON(t, fmt.Sprintf("%s/books/%d", base, bookID))

		resp := PostJSON(t, base+"/books", map[string]string{
			"title": "第二本",
			"ISBN":  testISBN,
			"genre": "Fiction",
		})
		assert.Equal(t, 40911, resp.Code)
	})

	t.Run("查询的genre过滤值必须在白名单内", func(t *testing.T) {
		resp := GetJSON(t, base+"/books?genre=Romance")
		assert.Equal(t, 42200, resp.Code)
	})

	t.Run("替换不存在的ID时未找到优先于字段校验", func(t *testing.T) {
		resp := PutJSON(t, base+"/books/999999999", map[string]string{
			"title": "只有书名",
		})
		assert.Equal(t, 40405, resp.Code)
	})
}
