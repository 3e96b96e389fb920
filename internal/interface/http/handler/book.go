package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	bookService *book.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(bookService *book.Service) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// Create 创建图书
// @Summary      创建图书
// @Description  提交书名/ISBN/体裁,作者等书目字段由外部数据源补全
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.CreateBookResponse}
// @Failure      422 {object} response.Response "字段缺失/体裁不合法/ISBN重复"
// @Failure      503 {object} response.Response "外部书目数据源不可用"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "参数错误: "+err.Error())
		return
	}

	b, err := h.bookService.Create(c.Request.Context(), req.Title, req.ISBN, req.Genre)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.CreateBookResponse{ID: b.ID})
}

// Get 获取单本图书
// @Summary      获取图书
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	b, err := h.bookService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(b))
}

// Replace 整体替换图书
// @Summary      整体替换图书
// @Description  六个字段全部必填,不做外部书目补全
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.ReplaceBookRequest true "完整图书记录"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      422 {object} response.Response "字段缺失/体裁不合法"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Replace(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	var req dto.ReplaceBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "参数错误: "+err.Error())
		return
	}

	b, err := h.bookService.Replace(c.Request.Context(), id, book.ReplaceData{
		Title:         req.Title,
		Authors:       req.Authors,
		ISBN:          req.ISBN,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		Genre:         req.Genre,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookResponse(b))
}

// Delete 删除图书
// @Summary      删除图书
// @Description  级联删除对应的评分记录
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := h.bookService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"id": id})
}

// List 条件查询图书
// @Summary      条件查询图书
// @Description  条件之间AND关系;title/authors/publisher子串匹配,其余精确匹配
// @Tags         图书
// @Produce      json
// @Param        title query string false "书名(子串)"
// @Param        authors query string false "作者(子串)"
// @Param        ISBN query string false "ISBN(精确)"
// @Param        publisher query string false "出版社(子串)"
// @Param        publishedDate query string false "出版日期(精确)"
// @Param        genre query string false "体裁(白名单内精确)"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      422 {object} response.Response "体裁不合法"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "参数错误: "+err.Error())
		return
	}

	books, err := h.bookService.List(c.Request.Context(), book.Query{
		Title:         req.Title,
		Authors:       req.Authors,
		ISBN:          req.ISBN,
		Publisher:     req.Publisher,
		PublishedDate: req.PublishedDate,
		Genre:         req.Genre,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookResponse, len(books))
	for i, b := range books {
		list[i] = toBookResponse(b)
	}
	response.Success(c, list)
}

// parseBookID 解析路径参数中的图书ID,失败时已写入响应
func parseBookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "图书ID必须是正整数")
		return 0, false
	}
	return uint(id), true
}

// toBookResponse 领域实体 → HTTP响应
func toBookResponse(b *book.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Authors:       b.Authors,
		ISBN:          b.ISBN,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		Genre:         b.Genre,
	}
}
