// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/diff"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// listExcerptRunes 列表摘要长度
const listExcerptRunes = 120

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// Get 获取单条笔记
	Get(ctx context.Context, params *dto.NoteGetRequest) (*dto.NoteDTO, error)

	// Create 创建笔记：查重标题、落库、解析他人指向新标题的待解析链接、同步自身内容
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, *domain.SyncResult, error)

	// Update 更新笔记：内容变更触发链接同步（与笔记行同事务）并记录历史版本，
	// 改名触发待解析链接重解析；仅位置变更走快速路径
	Update(ctx context.Context, params *dto.NoteUpdateRequest) (*dto.NoteDTO, *domain.SyncResult, error)

	// Delete 软删除笔记并清理其发出的链接，连接保留
	Delete(ctx context.Context, params *dto.NoteDeleteRequest) error

	// List 分页获取笔记列表，keyword 匹配标题或内容
	List(ctx context.Context, params *dto.NoteListRequest) ([]*dto.NoteListItemDTO, int64, error)

	// Cleanup 物理清理超过保留期的软删除笔记，返回清理数量
	Cleanup(ctx context.Context) (int64, error)
}

type noteService struct {
	noteRepo   domain.NoteRepository
	linkRepo   domain.LinkRepository
	syncSvc    SyncService
	historySvc NoteHistoryService
	events     EventPublisher
	config     *ServiceConfig
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, linkRepo domain.LinkRepository, syncSvc SyncService, historySvc NoteHistoryService, events EventPublisher, config *ServiceConfig) NoteService {
	if events == nil {
		events = NopPublisher()
	}
	return &noteService{
		noteRepo:   noteRepo,
		linkRepo:   linkRepo,
		syncSvc:    syncSvc,
		historySvc: historySvc,
		events:     events,
		config:     config,
	}
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, params *dto.NoteGetRequest) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNoteNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return dto.NoteFromDomain(note), nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, *domain.SyncResult, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, nil, code.ErrorNoteTitleEmpty
	}
	if err := s.checkTitleFree(ctx, title, 0); err != nil {
		return nil, nil, err
	}

	note := &domain.Note{
		Title:       title,
		Content:     params.Content,
		ContentHash: util.EncodeHash32(params.Content),
		Tags:        normalizeTags(params.Tags),
		PositionX:   params.PositionX,
		PositionY:   params.PositionY,
	}
	created, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		return nil, nil, code.ErrorNoteCreateFailed.WithDetails(err.Error())
	}

	// 其他笔记中指向该标题的待解析链接现在可以落位了
	if _, err := s.syncSvc.ResolvePending(ctx, created); err != nil {
		global.Logger.Warn("pending resolution after create failed",
			zap.Int64(logger.FieldNoteID, created.ID),
			zap.Error(err),
		)
	}

	syncResult, err := s.syncSvc.SyncNote(ctx, created)
	if err != nil {
		return nil, nil, err
	}

	if created.Content != "" {
		s.recordHistory(ctx, created)
	}

	s.events.Publish(dto.WSActionNoteUpdated, &dto.WSNoteEventData{
		NoteID: created.ID,
		Title:  created.Title,
	})
	return dto.NoteFromDomain(created), syncResult, nil
}

// Update 更新笔记
func (s *noteService) Update(ctx context.Context, params *dto.NoteUpdateRequest) (*dto.NoteDTO, *domain.SyncResult, error) {
	note, err := s.noteRepo.GetByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, code.ErrorNoteNotFound
		}
		return nil, nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	// 画布拖动只动坐标，跳过同步与历史
	if positionOnly(params) {
		if err := s.noteRepo.UpdatePosition(ctx, note.ID, *params.PositionX, *params.PositionY); err != nil {
			return nil, nil, code.ErrorNoteModifyFailed.WithDetails(err.Error())
		}
		note.PositionX = *params.PositionX
		note.PositionY = *params.PositionY
		return dto.NoteFromDomain(note), nil, nil
	}

	titleChanged := false
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, nil, code.ErrorNoteTitleEmpty
		}
		if !strings.EqualFold(title, note.Title) {
			if err := s.checkTitleFree(ctx, title, note.ID); err != nil {
				return nil, nil, err
			}
		}
		titleChanged = title != note.Title
		note.Title = title
	}

	contentChanged := false
	if params.Content != nil && diff.HasChanges(note.Content, *params.Content) {
		contentChanged = true
		note.Content = *params.Content
		note.ContentHash = util.EncodeHash32(note.Content)
	}
	if params.Tags != nil {
		note.Tags = normalizeTags(*params.Tags)
	}
	if params.PositionX != nil {
		note.PositionX = *params.PositionX
	}
	if params.PositionY != nil {
		note.PositionY = *params.PositionY
	}

	var syncResult *domain.SyncResult
	if contentChanged {
		// 笔记行与链接增删在同一事务内提交，失败则整次保存回滚
		syncResult, err = s.syncSvc.SyncNote(ctx, note)
		if err != nil {
			return nil, nil, err
		}
		s.recordHistory(ctx, note)
	} else {
		if _, err := s.noteRepo.Update(ctx, note); err != nil {
			return nil, nil, code.ErrorNoteModifyFailed.WithDetails(err.Error())
		}
	}

	if titleChanged {
		// 新标题可能命中他人的待解析链接；指向本笔记的已解析链接按 ID 存储，改名不受影响
		if _, err := s.syncSvc.ResolvePending(ctx, note); err != nil {
			global.Logger.Warn("pending resolution after rename failed",
				zap.Int64(logger.FieldNoteID, note.ID),
				zap.Error(err),
			)
		}
	}

	s.events.Publish(dto.WSActionNoteUpdated, &dto.WSNoteEventData{
		NoteID: note.ID,
		Title:  note.Title,
	})
	return dto.NoteFromDomain(note), syncResult, nil
}

// Delete 软删除笔记
func (s *noteService) Delete(ctx context.Context, params *dto.NoteDeleteRequest) error {
	note, err := s.noteRepo.GetByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorNoteNotFound
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}

	if err := s.noteRepo.SoftDelete(ctx, note.ID); err != nil {
		return code.ErrorNoteDeleteFailed.WithDetails(err.Error())
	}

	// 该笔记发出的链接随之清理；连接保留，指向它的链接在读路径被跳过
	if err := s.linkRepo.DeleteBySource(ctx, note.ID); err != nil {
		global.Logger.Warn("link cleanup after delete failed",
			zap.Int64(logger.FieldNoteID, note.ID),
			zap.Error(err),
		)
	}

	s.events.Publish(dto.WSActionNoteDeleted, &dto.WSNoteEventData{
		NoteID: note.ID,
		Title:  note.Title,
	})
	return nil
}

// List 分页获取笔记列表
func (s *noteService) List(ctx context.Context, params *dto.NoteListRequest) ([]*dto.NoteListItemDTO, int64, error) {
	notes, err := s.noteRepo.List(ctx, params.Keyword, params.Page, params.PageSize)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}
	total, err := s.noteRepo.ListCount(ctx, params.Keyword)
	if err != nil {
		return nil, 0, code.ErrorNoteListFailed.WithDetails(err.Error())
	}

	items := make([]*dto.NoteListItemDTO, 0, len(notes))
	for _, n := range notes {
		items = append(items, &dto.NoteListItemDTO{
			ID:        n.ID,
			Title:     n.Title,
			Excerpt:   domain.Excerpt(util.PlainText(n.Content), listExcerptRunes),
			Tags:      n.Tags,
			UpdatedAt: timex.Time(n.UpdatedAt),
		})
	}
	return items, total, nil
}

// Cleanup 物理清理超过保留期的软删除笔记
func (s *noteService) Cleanup(ctx context.Context) (int64, error) {
	retention := s.config.App.SoftDeleteRetentionTime
	if retention == "" || retention == "0" {
		return 0, nil
	}
	d, err := util.ParseDuration(retention)
	if err != nil || d <= 0 {
		global.Logger.Warn("invalid soft delete retention, cleanup skipped",
			zap.String("retention", retention),
		)
		return 0, nil
	}

	ids, err := s.noteRepo.DeletePhysicalByTime(ctx, time.Now().Add(-d))
	if err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if s.historySvc != nil {
		// 笔记行已清除，历史版本一并清理
		for _, id := range ids {
			if err := s.historySvc.PurgeNote(ctx, id); err != nil {
				global.Logger.Warn("history purge after cleanup failed",
					zap.Int64(logger.FieldNoteID, id),
					zap.Error(err),
				)
			}
		}
	}
	count := int64(len(ids))
	if count > 0 {
		global.Logger.Info("soft deleted notes purged", zap.Int64(logger.FieldCount, count))
	}
	return count, nil
}

// recordHistory 为内容变更记录一个历史版本，失败只告警不阻断保存
func (s *noteService) recordHistory(ctx context.Context, note *domain.Note) {
	if s.historySvc == nil {
		return
	}
	if err := s.historySvc.Record(ctx, note); err != nil {
		global.Logger.Warn("history record failed",
			zap.Int64(logger.FieldNoteID, note.ID),
			zap.Error(err),
		)
	}
}

// checkTitleFree 校验标题未被其他笔记占用，标题解析忽略大小写
func (s *noteService) checkTitleFree(ctx context.Context, title string, selfID int64) error {
	existing, err := s.noteRepo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if existing != nil && existing.ID != selfID {
		return code.ErrorNoteTitleExist
	}
	return nil
}

func positionOnly(params *dto.NoteUpdateRequest) bool {
	return params.Title == nil && params.Content == nil && params.Tags == nil &&
		params.PositionX != nil && params.PositionY != nil
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

var _ NoteService = (*noteService)(nil)
