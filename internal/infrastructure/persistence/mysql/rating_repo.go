package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/rating"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ratingRepository 评分仓储实现(MySQL)
// 设计说明:
// 1. 写操作通过dbFrom参与图书服务发起的事务
//    (图书创建/删除时评分记录同事务级联)
// 2. Values序列整列读写,平均分随行更新
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db *gorm.DB) rating.Repository {
	return &ratingRepository{db: db}
}

// Create 创建评分记录
func (r *ratingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	model := &RatingModel{
		BookID:  rt.BookID,
		Title:   rt.Title,
		Values:  rt.Values,
		Average: rt.Average,
	}

	if err := dbFrom(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建评分记录失败")
	}

	rt.ID = model.ID
	rt.CreatedAt = model.CreatedAt
	rt.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByBookID 根据图书ID查找评分记录
func (r *ratingRepository) FindByBookID(ctx context.Context, bookID uint) (*rating.Rating, error) {
	var model RatingModel
	err := dbFrom(ctx, r.db).Where("book_id = ?", bookID).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rating.ErrRatingNotFound
		}
		return nil, apperrors.Wrap(err, "查询评分记录失败")
	}

	return toRatingEntity(&model), nil
}

// Update 持久化追加评分后的记录
func (r *ratingRepository) Update(ctx context.Context, rt *rating.Rating) error {
	// 用结构体Updates以便JSON序列化器生效,Select强制写入零值平均分
	err := dbFrom(ctx, r.db).Model(&RatingModel{}).
		Where("book_id = ?", rt.BookID).
		Select("values", "average").
		Updates(&RatingModel{Values: rt.Values, Average: rt.Average}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新评分记录失败")
	}
	return nil
}

// DeleteByBookID 删除评分记录(图书删除时级联)
func (r *ratingRepository) DeleteByBookID(ctx context.Context, bookID uint) error {
	result := dbFrom(ctx, r.db).Where("book_id = ?", bookID).Delete(&RatingModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评分记录失败")
	}
	if result.RowsAffected == 0 {
		return rating.ErrRatingNotFound
	}
	return nil
}

// FindAll 获取全部评分记录
func (r *ratingRepository) FindAll(ctx context.Context) ([]*rating.Rating, error) {
	var models []RatingModel
	if err := dbFrom(ctx, r.db).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评分记录失败")
	}

	ratings := make([]*rating.Rating, len(models))
	for i := range models {
		ratings[i] = toRatingEntity(&models[i])
	}
	return ratings, nil
}

// toRatingEntity GORM模型 → 领域实体
func toRatingEntity(m *RatingModel) *rating.Rating {
	values := m.Values
	if values == nil {
		values = []int{}
	}
	return &rating.Rating{
		ID:        m.ID,
		BookID:    m.BookID,
		Title:     m.Title,
		Values:    values,
		Average:   m.Average,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
