// Package dao implements the data access layer
package dao

import (
	"context"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/model"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// edgeRepository implements domain.EdgeRepository interface
type edgeRepository struct {
	dao *Dao
}

// NewEdgeRepository creates an EdgeRepository instance
func NewEdgeRepository(dao *Dao) domain.EdgeRepository {
	return &edgeRepository{dao: dao}
}

// toDomain converts database model to domain model
func (r *edgeRepository) toDomain(m *model.Edge) *domain.Edge {
	if m == nil {
		return nil
	}
	return &domain.Edge{
		ID:               m.ID,
		SourceNoteID:     m.SourceNoteID,
		TargetNoteID:     m.TargetNoteID,
		RelationshipType: domain.RelationshipType(m.RelationshipType),
		Label:            m.Label,
		IsManual:         m.IsManual,
		CreatedAt:        time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取连线
func (r *edgeRepository) GetByID(ctx context.Context, id int64) (*domain.Edge, error) {
	var m model.Edge
	err := r.dao.DB().WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建连线
func (r *edgeRepository) Create(ctx context.Context, edge *domain.Edge) (*domain.Edge, error) {
	m := &model.Edge{
		SourceNoteID:     edge.SourceNoteID,
		TargetNoteID:     edge.TargetNoteID,
		RelationshipType: string(edge.RelationshipType),
		Label:            edge.Label,
		IsManual:         edge.IsManual,
		CreatedAt:        timex.Now(),
	}
	if err := r.dao.DB().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新连线的关系类型与标签
func (r *edgeRepository) Update(ctx context.Context, edge *domain.Edge) error {
	return r.dao.DB().WithContext(ctx).
		Model(&model.Edge{}).
		Where("id = ?", edge.ID).
		Updates(map[string]interface{}{
			"relationship_type": string(edge.RelationshipType),
			"label":             edge.Label,
		}).Error
}

// Delete 删除连线
func (r *edgeRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.DB().WithContext(ctx).Where("id = ?", id).Delete(&model.Edge{}).Error
}

// ExistsBetween 判断两个笔记之间是否已有连线，方向无关
func (r *edgeRepository) ExistsBetween(ctx context.Context, noteA, noteB int64) (bool, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).
		Model(&model.Edge{}).
		Where("(source_note_id = ? AND target_note_id = ?) OR (source_note_id = ? AND target_note_id = ?)",
			noteA, noteB, noteB, noteA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByNote 获取关联指定笔记的全部连线
func (r *edgeRepository) ListByNote(ctx context.Context, noteID int64) ([]*domain.Edge, error) {
	var modelList []*model.Edge
	err := r.dao.DB().WithContext(ctx).
		Where("source_note_id = ? OR target_note_id = ?", noteID, noteID).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.Edge
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// ListAll 获取全部连线
func (r *edgeRepository) ListAll(ctx context.Context) ([]*domain.Edge, error) {
	var modelList []*model.Edge
	err := r.dao.DB().WithContext(ctx).Find(&modelList).Error
	if err != nil {
		return nil, err
	}

	var results []*domain.Edge
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results, nil
}

// CountAll 获取连线总数
func (r *edgeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).Model(&model.Edge{}).Count(&count).Error
	return count, err
}

// Ensure edgeRepository implements domain.EdgeRepository
var _ domain.EdgeRepository = (*edgeRepository)(nil)
