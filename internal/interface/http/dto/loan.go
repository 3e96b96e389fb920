package dto

// CreateLoanRequest HTTP创建借阅请求
type CreateLoanRequest struct {
	MemberName string `json:"memberName" binding:"required" example:"张三"`
	ISBN       string `json:"ISBN" binding:"required" example:"9780135957059"`
	LoanDate   string `json:"loanDate" binding:"required" example:"2026-08-29"`
}

// CreateLoanResponse HTTP创建借阅响应(只返回借阅单号)
type CreateLoanResponse struct {
	LoanID string `json:"loanID" example:"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"`
}

// ListLoansRequest HTTP借阅条件查询请求(query string,全部精确匹配)
type ListLoansRequest struct {
	MemberName string `form:"memberName"`
	ISBN       string `form:"ISBN"`
	LoanDate   string `form:"loanDate"`
}

// LoanResponse HTTP借阅记录响应
// title/bookID是借出时点从图书服务拿到的快照,之后不回查
type LoanResponse struct {
	LoanID     string `json:"loanID" example:"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"`
	MemberName string `json:"memberName" example:"张三"`
	ISBN       string `json:"ISBN" example:"9780135957059"`
	Title      string `json:"title" example:"The Pragmatic Programmer"`
	BookID     uint   `json:"bookID" example:"1"`
	LoanDate   string `json:"loanDate" example:"2026-08-29"`
}
