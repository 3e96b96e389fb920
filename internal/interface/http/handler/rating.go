package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/rating"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// RatingHandler 评分HTTP处理器
type RatingHandler struct {
	ratingService *rating.Service
}

// NewRatingHandler 创建评分处理器
func NewRatingHandler(ratingService *rating.Service) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// List 获取评分记录列表
// @Summary      获取评分记录列表
// @Description  可选按图书ID过滤;带id时返回单个对象而非列表
// @Tags         评分
// @Produce      json
// @Param        id query int false "图书ID"
// @Success      200 {object} response.Response{data=[]dto.RatingResponse}
// @Failure      404 {object} response.Response "指定图书无评分记录"
// @Router       /api/v1/ratings [get]
func (h *RatingHandler) List(c *gin.Context) {
	// 带id时与GET /ratings/:id同形:返回单个对象,不包装成单元素列表
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeValidation, "图书ID必须是正整数")
			return
		}

		r, err := h.ratingService.GetByBookID(c.Request.Context(), uint(id))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, toRatingResponse(r))
		return
	}

	ratings, err := h.ratingService.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.RatingResponse, len(ratings))
	for i, r := range ratings {
		list[i] = toRatingResponse(r)
	}
	response.Success(c, list)
}

// Get 获取某图书的评分记录
// @Summary      获取评分记录
// @Tags         评分
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.RatingResponse}
// @Failure      404 {object} response.Response "评分记录不存在"
// @Router       /api/v1/ratings/{id} [get]
func (h *RatingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "图书ID必须是正整数")
		return
	}

	r, err := h.ratingService.GetByBookID(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toRatingResponse(r))
}

// AddValue 提交一次评分
// @Summary      提交评分
// @Description  追加到评分序列并重新推导平均分,返回新的平均分
// @Tags         评分
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.AddRatingValueRequest true "评分值(1-5)"
// @Success      201 {object} response.Response{data=dto.AddRatingValueResponse}
// @Failure      404 {object} response.Response "评分记录不存在"
// @Failure      422 {object} response.Response "评分值超出范围"
// @Router       /api/v1/ratings/{id}/values [post]
func (h *RatingHandler) AddValue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "图书ID必须是正整数")
		return
	}

	var req dto.AddRatingValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeValidation, "参数错误: "+err.Error())
		return
	}

	average, err := h.ratingService.RecordValue(c.Request.Context(), uint(id), req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.AddRatingValueResponse{Average: average})
}

// Top 获取热门榜单
// @Summary      获取热门榜单
// @Description  评分数>=3的图书按平均分取前3,第3名平分并列全收
// @Tags         评分
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.RatingResponse}
// @Router       /api/v1/top [get]
func (h *RatingHandler) Top(c *gin.Context) {
	entries, err := h.ratingService.TopBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.RatingResponse, len(entries))
	for i, r := range entries {
		list[i] = toRatingResponse(r)
	}
	response.Success(c, list)
}

// toRatingResponse 领域实体 → HTTP响应
func toRatingResponse(r *rating.Rating) *dto.RatingResponse {
	return &dto.RatingResponse{
		BookID:  r.BookID,
		Title:   r.Title,
		Values:  r.Values,
		Average: r.Average,
	}
}
