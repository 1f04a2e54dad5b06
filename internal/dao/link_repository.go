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

// linkRepository implements domain.LinkRepository interface
type linkRepository struct {
	dao *Dao
}

// NewLinkRepository creates a LinkRepository instance
func NewLinkRepository(dao *Dao) domain.LinkRepository {
	return &linkRepository{dao: dao}
}

// toDomain converts database model to domain model
func (r *linkRepository) toDomain(m *model.Link) *domain.Link {
	if m == nil {
		return nil
	}
	return &domain.Link{
		ID:               m.ID,
		SourceNoteID:     m.SourceNoteID,
		TargetNoteID:     m.TargetNoteID,
		TargetTitle:      m.TargetTitle,
		TextOffset:       m.TextOffset,
		RelationshipType: domain.RelationshipType(m.RelationshipType),
		CreatedAt:        time.Time(m.CreatedAt),
	}
}

func (r *linkRepository) toDomainList(modelList []*model.Link) []*domain.Link {
	var results []*domain.Link
	for _, m := range modelList {
		results = append(results, r.toDomain(m))
	}
	return results
}

// ListBySource 获取源笔记的全部链接
func (r *linkRepository) ListBySource(ctx context.Context, sourceNoteID int64) ([]*domain.Link, error) {
	var modelList []*model.Link
	err := r.dao.DB().WithContext(ctx).
		Where("source_note_id = ?", sourceNoteID).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(modelList), nil
}

// ListResolvedByTarget 获取指向目标笔记的已解析链接
func (r *linkRepository) ListResolvedByTarget(ctx context.Context, targetNoteID int64) ([]*domain.Link, error) {
	var modelList []*model.Link
	err := r.dao.DB().WithContext(ctx).
		Where("target_note_id = ?", targetNoteID).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(modelList), nil
}

// ListResolvedBySource 获取源笔记的已解析链接
func (r *linkRepository) ListResolvedBySource(ctx context.Context, sourceNoteID int64) ([]*domain.Link, error) {
	var modelList []*model.Link
	err := r.dao.DB().WithContext(ctx).
		Where("source_note_id = ? AND target_note_id <> 0", sourceNoteID).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(modelList), nil
}

// ListPendingByTitle 获取目标标题匹配的未解析链接，忽略大小写
func (r *linkRepository) ListPendingByTitle(ctx context.Context, title string) ([]*domain.Link, error) {
	var modelList []*model.Link
	err := r.dao.DB().WithContext(ctx).
		Where("target_note_id = 0 AND LOWER(target_title) = LOWER(?)", title).
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(modelList), nil
}

// ListSourceIDsByTarget 获取已链接到目标笔记的源笔记ID集合
func (r *linkRepository) ListSourceIDsByTarget(ctx context.Context, targetNoteID int64) ([]int64, error) {
	var ids []int64
	err := r.dao.DB().WithContext(ctx).
		Model(&model.Link{}).
		Where("target_note_id = ?", targetNoteID).
		Distinct("source_note_id").
		Pluck("source_note_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListAllResolved 获取全部已解析链接
func (r *linkRepository) ListAllResolved(ctx context.Context) ([]*domain.Link, error) {
	var modelList []*model.Link
	err := r.dao.DB().WithContext(ctx).
		Where("target_note_id <> 0").
		Find(&modelList).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(modelList), nil
}

// Resolve 将未解析链接指向目标笔记
func (r *linkRepository) Resolve(ctx context.Context, linkID, targetNoteID int64) error {
	return r.dao.DB().WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ? AND target_note_id = 0", linkID).
		Update("target_note_id", targetNoteID).Error
}

// CommitSync 在单个事务内提交一次同步
// 笔记行更新、过期链接删除、新链接插入、保留链接刷新与镜像连线全部一起提交，
// 任何一步失败整体回滚。镜像连线在事务内做方向无关的去重检查。
func (r *linkRepository) CommitSync(ctx context.Context, commit *domain.SyncCommit) (*domain.SyncResult, error) {
	result := &domain.SyncResult{
		LinksAdded:   len(commit.InsertLinks),
		LinksRemoved: len(commit.DeleteIDs),
		LinksKept:    len(commit.UpdateLinks),
	}
	if commit.Note != nil {
		result.NoteID = commit.Note.ID
	}

	err := r.dao.ExecuteWrite(ctx, result.NoteID, func() error {
		return r.dao.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := timex.Now()

			if commit.Note != nil {
				updates := map[string]interface{}{
					"title":        commit.Note.Title,
					"content":      commit.Note.Content,
					"content_hash": commit.Note.ContentHash,
					"tags":         commit.Note.Tags,
					"updated_at":   now,
				}
				if err := tx.Model(&model.Note{}).Where("id = ?", commit.Note.ID).Updates(updates).Error; err != nil {
					return err
				}
			}

			if len(commit.DeleteIDs) > 0 {
				if err := tx.Where("id IN ?", commit.DeleteIDs).Delete(&model.Link{}).Error; err != nil {
					return err
				}
			}

			for _, l := range commit.UpdateLinks {
				updates := map[string]interface{}{
					"target_note_id": l.TargetNoteID,
					"text_offset":    l.TextOffset,
				}
				if err := tx.Model(&model.Link{}).Where("id = ?", l.ID).Updates(updates).Error; err != nil {
					return err
				}
			}

			if len(commit.InsertLinks) > 0 {
				var models []*model.Link
				for _, l := range commit.InsertLinks {
					models = append(models, &model.Link{
						SourceNoteID:     l.SourceNoteID,
						TargetNoteID:     l.TargetNoteID,
						TargetTitle:      l.TargetTitle,
						TextOffset:       l.TextOffset,
						RelationshipType: string(l.RelationshipType),
						CreatedAt:        now,
					})
				}
				if err := tx.CreateInBatches(models, 100).Error; err != nil {
					return err
				}
			}

			for _, e := range commit.MirrorEdges {
				var count int64
				err := tx.Model(&model.Edge{}).
					Where("(source_note_id = ? AND target_note_id = ?) OR (source_note_id = ? AND target_note_id = ?)",
						e.SourceNoteID, e.TargetNoteID, e.TargetNoteID, e.SourceNoteID).
					Count(&count).Error
				if err != nil {
					return err
				}
				if count > 0 {
					continue
				}

				em := &model.Edge{
					SourceNoteID:     e.SourceNoteID,
					TargetNoteID:     e.TargetNoteID,
					RelationshipType: string(e.RelationshipType),
					Label:            e.Label,
					IsManual:         false,
					CreatedAt:        now,
				}
				if err := tx.Create(em).Error; err != nil {
					return err
				}
				result.EdgesCreated++
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteBySource 删除源笔记的全部链接
func (r *linkRepository) DeleteBySource(ctx context.Context, sourceNoteID int64) error {
	return r.dao.ExecuteWrite(ctx, sourceNoteID, func() error {
		return r.dao.DB().WithContext(ctx).
			Where("source_note_id = ?", sourceNoteID).
			Delete(&model.Link{}).Error
	})
}

// CountAll 获取链接总数
func (r *linkRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).Model(&model.Link{}).Count(&count).Error
	return count, err
}

// CountPending 获取未解析链接数量
func (r *linkRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.dao.DB().WithContext(ctx).
		Model(&model.Link{}).
		Where("target_note_id = 0").
		Count(&count).Error
	return count, err
}

// Ensure linkRepository implements domain.LinkRepository
var _ domain.LinkRepository = (*linkRepository)(nil)
