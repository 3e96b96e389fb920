package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. ISBN作为业务唯一标识(数据库层保证唯一性)，创建后不可变更含义
// 2. Authors是展示用字符串(多作者以" and "拼接)，由元数据补全生成
// 3. 创建时Authors/Publisher/PublishedDate以外部书目数据为准，
//    调用方提交的这几个字段会被覆盖("相信数据源，不相信提交者")
// 4. 整体替换(PUT)时六个字段全部以调用方为准，不再调用外部补全
type Book struct {
	ID            uint
	ISBN          string // ISBN号(国际标准书号)
	Title         string // 书名
	Authors       string // 作者(展示字符串，多作者以" and "拼接)
	Publisher     string // 出版社
	PublishedDate string // 出版日期(外部书目数据原样存储)
	Genre         string // 体裁(封闭枚举，见genre.go)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Enrichment 外部书目数据补全结果
// 字段缺失时补全为"missing"(包括无作者的情况)
type Enrichment struct {
	Title         string
	Authors       string
	Publisher     string
	PublishedDate string
}

// NewBook 创建新图书(工厂方法)
// 参数说明:
// - title/genre: 调用方提交，原样信任
// - isbn: 调用方提交，唯一性由仓储层校验
// - enriched: 外部书目数据，Authors/Publisher/PublishedDate以此为准
func NewBook(title, isbn, genre string, enriched Enrichment) *Book {
	now := time.Now()
	return &Book{
		ISBN:          isbn,
		Title:         title,
		Authors:       enriched.Authors,
		Publisher:     enriched.Publisher,
		PublishedDate: enriched.PublishedDate,
		Genre:         genre,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ReplaceWith 整体替换图书记录(领域行为)
// 业务规则:六个必填字段全部覆盖，不保留旧值，不触发外部补全
func (b *Book) ReplaceWith(title, authors, isbn, publisher, publishedDate, genre string) {
	b.Title = title
	b.Authors = authors
	b.ISBN = isbn
	b.Publisher = publisher
	b.PublishedDate = publishedDate
	b.Genre = genre
	b.UpdatedAt = time.Now()
}
