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

// noteHistoryRepository implements domain.NoteHistoryRepository interface
type noteHistoryRepository struct {
	dao *Dao
}

// NewNoteHistoryRepository creates a NoteHistoryRepository instance
func NewNoteHistoryRepository(dao *Dao) domain.NoteHistoryRepository {
	return &noteHistoryRepository{dao: dao}
}

// toDomain converts database model to domain model
func (r *noteHistoryRepository) toDomain(m *model.NoteHistory) *domain.NoteHistory {
	if m == nil {
		return nil
	}
	return &domain.NoteHistory{
		ID:        m.ID,
		NoteID:    m.NoteID,
		Title:     m.Title,
		Content:   m.Content,
		Version:   m.Version,
		CreatedAt: time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取历史记录
func (r *noteHistoryRepository) GetByID(ctx context.Context, id int64) (*domain.NoteHistory, error) {
	var m model.NoteHistory
	err := r.dao.DB().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建历史记录
func (r *noteHistoryRepository) Create(ctx context.Context, history *domain.NoteHistory) (*domain.NoteHistory, error) {
	m := &model.NoteHistory{
		NoteID:    history.NoteID,
		Title:     history.Title,
		Content:   history.Content,
		Version:   history.Version,
		CreatedAt: timex.Now(),
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByNoteID 根据笔记ID分页获取历史记录，按版本倒序
func (r *noteHistoryRepository) ListByNoteID(ctx context.Context, noteID int64, page, pageSize int) ([]*domain.NoteHistory, int64, error) {
	db := r.dao.DB().WithContext(ctx).Model(&model.NoteHistory{}).Where("note_id = ?", noteID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modelList []*model.NoteHistory
	err := db.Order("version DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&modelList).Error
	if err != nil {
		return nil, 0, err
	}

	var results []*domain.NoteHistory
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, total, nil
}

// GetLatestVersion 获取笔记的最新版本号，无历史时返回 0
func (r *noteHistoryRepository) GetLatestVersion(ctx context.Context, noteID int64) (int64, error) {
	var m model.NoteHistory
	err := r.dao.DB().WithContext(ctx).
		Where("note_id = ?", noteID).
		Order("version DESC").
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return m.Version, nil
}

// ListNoteIDsWithOldHistory 获取存在早于截止时间历史记录的笔记ID列表
func (r *noteHistoryRepository) ListNoteIDsWithOldHistory(ctx context.Context, cutoff time.Time) ([]int64, error) {
	var ids []int64
	err := r.dao.DB().WithContext(ctx).
		Model(&model.NoteHistory{}).
		Where("created_at < ?", timex.Time(cutoff)).
		Distinct("note_id").
		Pluck("note_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteOldVersions 删除早于截止时间的旧版本，保留最近 keepVersions 个
func (r *noteHistoryRepository) DeleteOldVersions(ctx context.Context, noteID int64, cutoff time.Time, keepVersions int) error {
	// 取出要保留的版本号下界
	var keep []int64
	err := r.dao.DB().WithContext(ctx).
		Model(&model.NoteHistory{}).
		Where("note_id = ?", noteID).
		Order("version DESC").
		Limit(keepVersions).
		Pluck("version", &keep).Error
	if err != nil {
		return err
	}
	if len(keep) == 0 {
		return nil
	}
	minKeep := keep[len(keep)-1]

	return r.dao.DB().WithContext(ctx).
		Where("note_id = ? AND version < ? AND created_at < ?", noteID, minKeep, timex.Time(cutoff)).
		Delete(&model.NoteHistory{}).Error
}

// DeleteByNoteID 删除笔记的全部历史记录
func (r *noteHistoryRepository) DeleteByNoteID(ctx context.Context, noteID int64) error {
	return r.dao.DB().WithContext(ctx).
		Where("note_id = ?", noteID).
		Delete(&model.NoteHistory{}).Error
}

// Ensure noteHistoryRepository implements domain.NoteHistoryRepository
var _ domain.NoteHistoryRepository = (*noteHistoryRepository)(nil)
