package dto

// CreateBookRequest HTTP创建图书请求
// 只收三个字段:作者/出版社/出版日期以外部书目数据为准,
// 调用方提交了也会被忽略
type CreateBookRequest struct {
	Title string `json:"title" binding:"required" example:"The Pragmatic Programmer"`
	ISBN  string `json:"ISBN" binding:"required" example:"9780135957059"`
	Genre string `json:"genre" binding:"required" example:"Science"`
}

// ReplaceBookRequest HTTP整体替换请求
// 六个字段全部必填,调用方数据原样信任(与创建不对称)。
// 必填校验放在领域层:存在性检查优先于字段校验,
// 不存在的ID即便请求体不完整也要返回404,绑定层拦截会颠倒这个次序
type ReplaceBookRequest struct {
	Title         string `json:"title" example:"The Pragmatic Programmer"`
	Authors       string `json:"authors" example:"David Thomas and Andrew Hunt"`
	ISBN          string `json:"ISBN" example:"9780135957059"`
	Publisher     string `json:"publisher" example:"Addison-Wesley"`
	PublishedDate string `json:"publishedDate" example:"2019-09-13"`
	Genre         string `json:"genre" example:"Science"`
}

// ListBooksRequest HTTP图书条件查询请求(query string)
// 条件之间AND关系;title/authors/publisher子串匹配,其余精确匹配
type ListBooksRequest struct {
	Title         string `form:"title"`
	Authors       string `form:"authors"`
	ISBN          string `form:"ISBN"`
	Publisher     string `form:"publisher"`
	PublishedDate string `form:"publishedDate"`
	Genre         string `form:"genre"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID            uint   `json:"id" example:"1"`
	Title         string `json:"title" example:"The Pragmatic Programmer"`
	Authors       string `json:"authors" example:"David Thomas and Andrew Hunt"`
	ISBN          string `json:"ISBN" example:"9780135957059"`
	Publisher     string `json:"publisher" example:"Addison-Wesley"`
	PublishedDate string `json:"publishedDate" example:"2019-09-13"`
	Genre         string `json:"genre" example:"Science"`
}

// CreateBookResponse HTTP创建图书响应(只返回新记录的ID)
type CreateBookResponse struct {
	ID uint `json:"id" example:"1"`
}

// RatingResponse HTTP评分记录响应
// values是完整评分序列,average由整个序列推导
type RatingResponse struct {
	BookID  uint    `json:"bookId" example:"1"`
	Title   string  `json:"title" example:"The Pragmatic Programmer"`
	Values  []int   `json:"values"`
	Average float64 `json:"average" example:"4.33"`
}

// AddRatingValueRequest HTTP提交评分请求
// 取值范围1-5在领域层校验,绑定层只管必填
type AddRatingValueRequest struct {
	Value int `json:"value" binding:"required" example:"5"`
}

// AddRatingValueResponse HTTP提交评分响应(返回新的平均分)
type AddRatingValueResponse struct {
	Average float64 `json:"average" example:"4.33"`
}
