package service

import (
	"context"
	"sort"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"go.uber.org/zap"
)

// NoteLinkService 链接面板的读路径：反向链接、正向链接、未链接提及
// 读取失败时降级为空列表，绝不让面板报错
type NoteLinkService interface {
	// GetBacklinks 返回指向 noteID 的已解析链接，每条带实时重算的上下文片段，
	// 按来源笔记更新时间倒序，来源已删除的条目被跳过
	GetBacklinks(ctx context.Context, noteID int64) ([]*dto.BacklinkItem, error)

	// GetOutlinks 返回 noteID 发出的已解析链接及上下文片段
	GetOutlinks(ctx context.Context, noteID int64) ([]*dto.OutlinkItem, error)

	// FindUnlinkedMentions 全量扫描其他在用笔记的纯文本投影，
	// 返回目标标题的每次字面出现；已链接到目标的来源笔记被整体排除
	FindUnlinkedMentions(ctx context.Context, noteID int64) ([]*dto.MentionItem, error)
}

type noteLinkService struct {
	noteRepo domain.NoteRepository
	linkRepo domain.LinkRepository
	scanSvc  ScanService
}

// NewNoteLinkService 创建 NoteLinkService 实例
func NewNoteLinkService(noteRepo domain.NoteRepository, linkRepo domain.LinkRepository, scanSvc ScanService) NoteLinkService {
	return &noteLinkService{
		noteRepo: noteRepo,
		linkRepo: linkRepo,
		scanSvc:  scanSvc,
	}
}

// GetBacklinks 返回指向该笔记的反向链接
func (s *noteLinkService) GetBacklinks(ctx context.Context, noteID int64) ([]*dto.BacklinkItem, error) {
	target, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorNoteNotFound
	}

	links, err := s.linkRepo.ListResolvedByTarget(ctx, noteID)
	if err != nil {
		global.Logger.Warn("backlink query failed, returning empty",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err),
		)
		return []*dto.BacklinkItem{}, nil
	}

	sources := s.loadSources(ctx, linkSourceIDs(links))
	items := make([]*dto.BacklinkItem, 0, len(links))
	for _, link := range links {
		source, ok := sources[link.SourceNoteID]
		if !ok {
			continue // 来源已删除
		}
		items = append(items, &dto.BacklinkItem{
			SourceNoteID: source.ID,
			SourceTitle:  source.Title,
			LinkText:     target.Title,
			Context:      s.scanSvc.LinkContext(source.Content, target.Title, link.TextOffset),
			UpdatedAt:    timex.Time(source.UpdatedAt),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return time.Time(items[i].UpdatedAt).After(time.Time(items[j].UpdatedAt))
	})
	return items, nil
}

// GetOutlinks 返回该笔记发出的正向链接
func (s *noteLinkService) GetOutlinks(ctx context.Context, noteID int64) ([]*dto.OutlinkItem, error) {
	source, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorNoteNotFound
	}

	links, err := s.linkRepo.ListResolvedBySource(ctx, noteID)
	if err != nil {
		global.Logger.Warn("outlink query failed, returning empty",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err),
		)
		return []*dto.OutlinkItem{}, nil
	}

	targetIDs := make([]int64, 0, len(links))
	for _, link := range links {
		targetIDs = append(targetIDs, link.TargetNoteID)
	}
	targets := s.loadSources(ctx, targetIDs)

	items := make([]*dto.OutlinkItem, 0, len(links))
	for _, link := range links {
		target, ok := targets[link.TargetNoteID]
		if !ok {
			continue
		}
		items = append(items, &dto.OutlinkItem{
			TargetNoteID: target.ID,
			TargetTitle:  target.Title,
			LinkText:     link.TargetTitle,
			Context:      s.scanSvc.LinkContext(source.Content, target.Title, link.TextOffset),
		})
	}
	return items, nil
}

// FindUnlinkedMentions 查找目标标题在其他笔记中的未链接提及
func (s *noteLinkService) FindUnlinkedMentions(ctx context.Context, noteID int64) ([]*dto.MentionItem, error) {
	target, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorNoteNotFound
	}

	linkedSources, err := s.linkRepo.ListSourceIDsByTarget(ctx, noteID)
	if err != nil {
		global.Logger.Warn("mention exclusion query failed, returning empty",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err),
		)
		return []*dto.MentionItem{}, nil
	}
	linked := make(map[int64]struct{}, len(linkedSources))
	for _, id := range linkedSources {
		linked[id] = struct{}{}
	}

	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		global.Logger.Warn("mention scan query failed, returning empty",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err),
		)
		return []*dto.MentionItem{}, nil
	}

	items := make([]*dto.MentionItem, 0)
	for _, note := range notes {
		if note.ID == target.ID {
			continue
		}
		if _, ok := linked[note.ID]; ok {
			continue // 已显式链接到目标的来源整体排除
		}
		plain := util.PlainText(note.Content)
		for _, m := range s.scanSvc.FindMentions(plain, target.Title) {
			m.SourceNoteID = note.ID
			m.SourceTitle = note.Title
			items = append(items, dto.MentionFromDomain(m))
		}
	}
	return items, nil
}

// loadSources 批量加载笔记并建立 ID 索引，已删除的笔记缺席
func (s *noteLinkService) loadSources(ctx context.Context, ids []int64) map[int64]*domain.Note {
	result := make(map[int64]*domain.Note, len(ids))
	if len(ids) == 0 {
		return result
	}
	notes, err := s.noteRepo.ListByIDs(ctx, ids)
	if err != nil {
		global.Logger.Warn("note batch load failed", zap.Error(err))
		return result
	}
	for _, n := range notes {
		result[n.ID] = n
	}
	return result
}

func linkSourceIDs(links []*domain.Link) []int64 {
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.SourceNoteID)
	}
	return ids
}

var _ NoteLinkService = (*noteLinkService)(nil)
