package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	loanService *loan.Service
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(loanService *loan.Service) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// Create 创建借阅记录
// @Summary      创建借阅
// @Description  校验会员上限与一书一借,到图书服务校验ISBN后落库
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLoanRequest true "借阅信息"
// @Success      201 {object} response.Response{data=dto.CreateLoanResponse}
// @Failure      422 {object} response.Response "字段缺失/会员达到上限/图书已借出"
// @Failure      503 {object} response.Response "图书服务不可用或无此ISBN"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "参数错误: "+err.Error())
		return
	}

	l, err := h.loanService.Create(c.Request.Context(), req.MemberName, req.ISBN, req.LoanDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.CreateLoanResponse{LoanID: l.LoanNo})
}

// Get 获取借阅记录
// @Summary      获取借阅记录
// @Tags         借阅
// @Produce      json
// @Param        loanID path string true "借阅单号"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{loanID} [get]
func (h *LoanHandler) Get(c *gin.Context) {
	l, err := h.loanService.Get(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toLoanResponse(l))
}

// Delete 归还(删除借阅记录)
// @Summary      归还图书
// @Description  删除借阅记录,记录消失即图书可再次被借出
// @Tags         借阅
// @Produce      json
// @Param        loanID path string true "借阅单号"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{loanID} [delete]
func (h *LoanHandler) Delete(c *gin.Context) {
	loanNo := c.Param("loanID")
	if err := h.loanService.Delete(c.Request.Context(), loanNo); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"loanID": loanNo})
}

// List 条件查询借阅记录
// @Summary      条件查询借阅记录
// @Description  条件之间AND关系,全部精确匹配
// @Tags         借阅
// @Produce      json
// @Param        memberName query string false "会员名(精确)"
// @Param        ISBN query string false "ISBN(精确)"
// @Param        loanDate query string false "借出日期(精确)"
// @Success      200 {object} response.Response{data=[]dto.LoanResponse}
// @Router       /api/v1/loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	var req dto.ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "参数错误: "+err.Error())
		return
	}

	loans, err := h.loanService.List(c.Request.Context(), loan.Query{
		MemberName: req.MemberName,
		ISBN:       req.ISBN,
		LoanDate:   req.LoanDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.LoanResponse, len(loans))
	for i, l := range loans {
		list[i] = toLoanResponse(l)
	}
	response.Success(c, list)
}

// toLoanResponse 领域实体 → HTTP响应
func toLoanResponse(l *loan.Loan) *dto.LoanResponse {
	return &dto.LoanResponse{
		LoanID:     l.LoanNo,
		MemberName: l.MemberName,
		ISBN:       l.ISBN,
		Title:      l.Title,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
	}
}
