// Package dao implements the data access layer
package dao

import (
	"context"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/model"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

	"gorm.io/gorm"
)

// noteRepository implements domain.NoteRepository interface
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository creates a NoteRepository instance
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain converts database model to domain model
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		ContentHash: m.ContentHash,
		Tags:        m.Tags,
		PositionX:   m.PositionX,
		PositionY:   m.PositionY,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   time.Time(m.CreatedAt),
		UpdatedAt:   time.Time(m.UpdatedAt),
	}
}

// GetByID 根据ID获取笔记（排除已删除）
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.DB().WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByTitle 根据标题获取笔记，忽略大小写
func (r *noteRepository) GetByTitle(ctx context.Context, title string) (*domain.Note, error) {
	var m model.Note
	err := r.dao.DB().WithContext(ctx).
		Where("LOWER(title) = LOWER(?) AND is_deleted = ?", title, false).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListAll 获取全部存活笔记
func (r *noteRepository) ListAll(ctx context.Context) ([]*domain.Note, error) {
	var modelList []*model.Note
	err := r.dao.DB().WithContext(ctx).
		Where("is_deleted = ?", false).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.Note
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// ListByIDs 根据ID集合获取存活笔记
func (r *noteRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var modelList []*model.Note
	err := r.dao.DB().WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.Note
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := timex.Now()
	m := &model.Note{
		Title:       note.Title,
		Content:     note.Content,
		ContentHash: note.ContentHash,
		Tags:        note.Tags,
		PositionX:   note.PositionX,
		PositionY:   note.PositionY,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created *model.Note
	err := r.dao.ExecuteWrite(ctx, note.ID, func() error {
		if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(created), nil
}

// Update 更新笔记
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	updates := map[string]interface{}{
		"title":        note.Title,
		"content":      note.Content,
		"content_hash": note.ContentHash,
		"tags":         note.Tags,
		"position_x":   note.PositionX,
		"position_y":   note.PositionY,
		"updated_at":   timex.Now(),
	}

	err := r.dao.ExecuteWrite(ctx, note.ID, func() error {
		return r.dao.DB().WithContext(ctx).
			Model(&model.Note{}).
			Where("id = ?", note.ID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, note.ID)
}

// UpdatePosition 更新画布位置
func (r *noteRepository) UpdatePosition(ctx context.Context, id int64, x, y float64) error {
	return r.dao.ExecuteWrite(ctx, id, func() error {
		return r.dao.DB().WithContext(ctx).
			Model(&model.Note{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"position_x": x,
				"position_y": y,
			}).Error
	})
}

// SoftDelete 标记删除
func (r *noteRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.dao.ExecuteWrite(ctx, id, func() error {
		return r.dao.DB().WithContext(ctx).
			Model(&model.Note{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_deleted": true,
				"updated_at": timex.Now(),
			}).Error
	})
}

// DeletePhysicalByTime 物理删除早于指定时间标记删除的笔记，返回被清除的笔记ID
func (r *noteRepository) DeletePhysicalByTime(ctx context.Context, before time.Time) ([]int64, error) {
	var ids []int64
	err := r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Note{}).
			Where("is_deleted = ? AND updated_at < ?", true, timex.Time(before)).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("id IN ?", ids).Delete(&model.Note{}).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// List 分页获取笔记列表，keyword 匹配标题或内容
func (r *noteRepository) List(ctx context.Context, keyword string, page, pageSize int) ([]*domain.Note, error) {
	db := r.dao.DB().WithContext(ctx).Where("is_deleted = ?", false)
	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	var modelList []*model.Note
	err := db.Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.Note
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// ListCount 获取笔记数量
func (r *noteRepository) ListCount(ctx context.Context, keyword string) (int64, error) {
	db := r.dao.DB().WithContext(ctx).Model(&model.Note{}).Where("is_deleted = ?", false)
	if keyword != "" {
		like := "%" + keyword + "%"
		db = db.Where("title LIKE ? OR content LIKE ?", like, like)
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}

// CountAll 获取存活笔记总数
func (r *noteRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).
		Model(&model.Note{}).
		Where("is_deleted = ?", false).
		Count(&count).Error
	return count, err
}

// Ensure noteRepository implements domain.NoteRepository
var _ domain.NoteRepository = (*noteRepository)(nil)
