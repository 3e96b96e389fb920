package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRatingRepo 内存评分仓储(测试用)
type fakeRatingRepo struct {
	byBookID map[uint]*Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{byBookID: make(map[uint]*Rating)}
}

func (f *fakeRatingRepo) Create(_ context.Context, r *Rating) error {
	f.byBookID[r.BookID] = r
	return nil
}

func (f *fakeRatingRepo) FindByBookID(_ context.Context, bookID uint) (*Rating, error) {
	r, ok := f.byBookID[bookID]
	if !ok {
		return nil, ErrRatingNotFound
	}
	// 返回副本,模拟仓储的读写边界
	clone := *r
	clone.Values = append([]int{}, r.Values...)
	return &clone, nil
}

func (f *fakeRatingRepo) Update(_ context.Context, r *Rating) error {
	if _, ok := f.byBookID[r.BookID]; !ok {
		return ErrRatingNotFound
	}
	f.byBookID[r.BookID] = r
	return nil
}

func (f *fakeRatingRepo) DeleteByBookID(_ context.Context, bookID uint) error {
	if _, ok := f.byBookID[bookID]; !ok {
		return ErrRatingNotFound
	}
	delete(f.byBookID, bookID)
	return nil
}

func (f *fakeRatingRepo) FindAll(_ context.Context) ([]*Rating, error) {
	all := make([]*Rating, 0, len(f.byBookID))
	for _, r := range f.byBookID {
		all = append(all, r)
	}
	return all, nil
}

// fakeTopStore 内存榜单快照存储(测试用)
type fakeTopStore struct {
	snapshot  []*Rating
	hasValue  bool
	saveCount int
	saveErr   error
}

func (f *fakeTopStore) Save(_ context.Context, entries []*Rating) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshot = entries
	f.hasValue = true
	f.saveCount++
	return nil
}

func (f *fakeTopStore) Load(_ context.Context) ([]*Rating, bool, error) {
	return f.snapshot, f.hasValue, nil
}

// TestService_RecordValue 测试评分提交
func TestService_RecordValue(t *testing.T) {
	ctx := context.Background()

	t.Run("评分值超出范围返回校验错误", func(t *testing.T) {
		svc := NewService(newFakeRatingRepo(), &fakeTopStore{})

		for _, v := range []int{0, -1, 6, 100} {
			_, err := svc.RecordValue(ctx, 1, v)
			assert.ErrorIs(t, err, ErrInvalidValue, "value=%d", v)
		}
	})

	t.Run("评分记录不存在返回未找到", func(t *testing.T) {
		svc := NewService(newFakeRatingRepo(), &fakeTopStore{})

		_, err := svc.RecordValue(ctx, 42, 5)
		assert.ErrorIs(t, err, ErrRatingNotFound)
	})

	t.Run("追加后平均分从完整序列重新推导", func(t *testing.T) {
		repo := newFakeRatingRepo()
		top := &fakeTopStore{}
		svc := NewService(repo, top)
		require.NoError(t, svc.CreateFor(ctx, 1, "甲"))

		avg, err := svc.RecordValue(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, float64(5), avg)

		avg, err = svc.RecordValue(ctx, 1, 4)
		require.NoError(t, err)
		assert.InDelta(t, 4.5, avg, 1e-9)

		avg, err = svc.RecordValue(ctx, 1, 3)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, avg, 1e-9)

		stored, err := svc.GetByBookID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 4, 3}, stored.Values)
	})

	t.Run("每次提交后同步重算榜单快照", func(t *testing.T) {
		repo := newFakeRatingRepo()
		top := &fakeTopStore{}
		svc := NewService(repo, top)
		require.NoError(t, svc.CreateFor(ctx, 1, "甲"))

		before := top.saveCount
		_, err := svc.RecordValue(ctx, 1, 5)
		require.NoError(t, err)
		_, err = svc.RecordValue(ctx, 1, 5)
		require.NoError(t, err)
		_, err = svc.RecordValue(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, before+3, top.saveCount)

		// 第3个评分后有资格入榜
		require.Len(t, top.snapshot, 1)
		assert.Equal(t, uint(1), top.snapshot[0].BookID)
	})

	t.Run("快照写入失败不影响已提交的评分", func(t *testing.T) {
		repo := newFakeRatingRepo()
		top := &fakeTopStore{saveErr: errors.New("redis不可用")}
		svc := NewService(repo, top)
		require.NoError(t, svc.CreateFor(ctx, 1, "甲"))

		// 评分已落库,快照是顾问性缓存:提交必须成功并返回新平均分,
		// 否则客户端重试会重复追加评分值
		avg, err := svc.RecordValue(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, float64(5), avg)

		stored, err := svc.GetByBookID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int{5}, stored.Values, "评分只追加一次")
	})
}

// TestService_TopBooks 测试榜单读取
func TestService_TopBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("快照命中时直接返回", func(t *testing.T) {
		repo := newFakeRatingRepo()
		top := &fakeTopStore{
			snapshot: []*Rating{newTestRating(7, "甲", 5, 5, 5)},
			hasValue: true,
		}
		svc := NewService(repo, top)

		entries, err := svc.TopBooks(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, uint(7), entries[0].BookID)
	})

	t.Run("快照未命中时从权威数据重算并回填", func(t *testing.T) {
		repo := newFakeRatingRepo()
		top := &fakeTopStore{}
		svc := NewService(repo, top)

		require.NoError(t, repo.Create(ctx, newTestRating(1, "甲", 5, 5, 5)))
		require.NoError(t, repo.Create(ctx, newTestRating(2, "乙", 1, 1)))

		entries, err := svc.TopBooks(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, uint(1), entries[0].BookID)

		// 回填后快照可用
		assert.True(t, top.hasValue)
	})

	t.Run("空快照命中时返回空榜单不再重算", func(t *testing.T) {
		repo := newFakeRatingRepo()
		require.NoError(t, repo.Create(ctx, newTestRating(1, "甲", 5, 5, 5)))

		top := &fakeTopStore{snapshot: []*Rating{}, hasValue: true}
		svc := NewService(repo, top)

		entries, err := svc.TopBooks(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries, "空榜单是合法快照,不触发重算")
	})
}

// TestService_Lifecycle 测试评分记录的生命周期操作
func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateFor创建空记录", func(t *testing.T) {
		repo := newFakeRatingRepo()
		svc := NewService(repo, &fakeTopStore{})

		require.NoError(t, svc.CreateFor(ctx, 3, "丙"))

		r, err := svc.GetByBookID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "丙", r.Title)
		assert.Empty(t, r.Values)
		assert.Equal(t, float64(0), r.Average)
	})

	t.Run("DeleteFor删除后查询返回未找到", func(t *testing.T) {
		repo := newFakeRatingRepo()
		svc := NewService(repo, &fakeTopStore{})
		require.NoError(t, svc.CreateFor(ctx, 3, "丙"))

		require.NoError(t, svc.DeleteFor(ctx, 3))

		_, err := svc.GetByBookID(ctx, 3)
		assert.ErrorIs(t, err, ErrRatingNotFound)

		// 重复删除同样返回未找到
		assert.ErrorIs(t, svc.DeleteFor(ctx, 3), ErrRatingNotFound)
	})
}
