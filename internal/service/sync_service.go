package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"go.uber.org/zap"
)

// SyncService 在每次笔记保存后把内容中的显式引用同步到图谱
// 流程：扫描 -> 与已存链接比对 -> 单事务提交笔记行与链接增删改；
// 新解析出的链接会镜像一条 references 连接，同步器从不删除连接
type SyncService interface {
	// SyncNote 扫描 note 的内容并提交链接变更，笔记行随链接在同一事务内更新
	SyncNote(ctx context.Context, note *domain.Note) (*domain.SyncResult, error)

	// ResolvePending 将目标标题与 note 匹配的待解析链接解析到该笔记，
	// 笔记新建或重命名后调用，返回解析数量
	ResolvePending(ctx context.Context, note *domain.Note) (int, error)
}

type syncService struct {
	noteRepo domain.NoteRepository
	linkRepo domain.LinkRepository
	edgeRepo domain.EdgeRepository
	scanSvc  ScanService
	events   EventPublisher
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(noteRepo domain.NoteRepository, linkRepo domain.LinkRepository, edgeRepo domain.EdgeRepository, scanSvc ScanService, events EventPublisher) SyncService {
	if events == nil {
		events = NopPublisher()
	}
	return &syncService{
		noteRepo: noteRepo,
		linkRepo: linkRepo,
		edgeRepo: edgeRepo,
		scanSvc:  scanSvc,
		events:   events,
	}
}

// desiredLink 扫描得到的一个链接目标，解析失败时 targetNoteID 为 0
type desiredLink struct {
	targetNoteID int64
	targetTitle  string
	textOffset   int
}

// linkKey 链接的比对键：已解析用目标笔记 ID，未解析用小写标题
func linkKey(targetNoteID int64, targetTitle string) string {
	if targetNoteID > 0 {
		return "id:" + strconv.FormatInt(targetNoteID, 10)
	}
	return "title:" + strings.ToLower(targetTitle)
}

// SyncNote 扫描笔记内容并在单事务内提交链接变更
func (s *syncService) SyncNote(ctx context.Context, note *domain.Note) (*domain.SyncResult, error) {
	scanned := s.scanSvc.LinkTargets(note.Content)

	existing, err := s.linkRepo.ListBySource(ctx, note.ID)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	desired := make(map[string]*desiredLink, len(scanned))
	order := make([]string, 0, len(scanned))
	for _, l := range scanned {
		d := &desiredLink{
			targetTitle: l.TargetTitle,
			textOffset:  l.StartOffset,
		}
		// 标题解析失败不阻塞保存，链接以待解析状态落库
		target, err := s.noteRepo.GetByTitle(ctx, l.TargetTitle)
		if err == nil && target != nil {
			d.targetNoteID = target.ID
		} else if err != nil {
			global.Logger.Debug("link target unresolved",
				zap.Int64(logger.FieldNoteID, note.ID),
				zap.String(logger.FieldTitle, l.TargetTitle),
			)
		}
		key := linkKey(d.targetNoteID, d.targetTitle)
		if _, ok := desired[key]; ok {
			continue
		}
		desired[key] = d
		order = append(order, key)
	}

	commit := &domain.SyncCommit{Note: note}
	kept := 0
	for _, e := range existing {
		key := linkKey(e.TargetNoteID, e.TargetTitle)
		d, ok := desired[key]
		if !ok {
			commit.DeleteIDs = append(commit.DeleteIDs, e.ID)
			continue
		}
		kept++
		delete(desired, key)
		if e.TextOffset != d.textOffset {
			updated := *e
			updated.TextOffset = d.textOffset
			commit.UpdateLinks = append(commit.UpdateLinks, &updated)
		}
	}

	for _, key := range order {
		d, ok := desired[key]
		if !ok {
			continue
		}
		commit.InsertLinks = append(commit.InsertLinks, &domain.Link{
			SourceNoteID:     note.ID,
			TargetNoteID:     d.targetNoteID,
			TargetTitle:      d.targetTitle,
			TextOffset:       d.textOffset,
			RelationshipType: domain.RelationReferences,
		})
		if d.targetNoteID > 0 && d.targetNoteID != note.ID {
			commit.MirrorEdges = append(commit.MirrorEdges, &domain.Edge{
				SourceNoteID:     note.ID,
				TargetNoteID:     d.targetNoteID,
				RelationshipType: domain.RelationReferences,
				IsManual:         false,
			})
		}
	}

	result, err := s.linkRepo.CommitSync(ctx, commit)
	if err != nil {
		global.Logger.Error("link sync commit failed",
			zap.Int64(logger.FieldNoteID, note.ID),
			zap.String(logger.FieldMethod, "SyncService.SyncNote"),
			zap.Error(err),
		)
		return nil, code.ErrorLinkSyncFailed.WithDetails(err.Error())
	}
	result.LinksKept = kept

	s.events.Publish(dto.WSActionGraphSynced, &dto.WSGraphSyncedData{
		NoteID:       note.ID,
		LinksAdded:   result.LinksAdded,
		LinksRemoved: result.LinksRemoved,
		EdgesCreated: result.EdgesCreated,
	})

	global.Logger.Debug("note links synced",
		zap.Int64(logger.FieldNoteID, note.ID),
		zap.Int("added", result.LinksAdded),
		zap.Int("removed", result.LinksRemoved),
		zap.Int("kept", result.LinksKept),
		zap.Int("edges", result.EdgesCreated),
	)
	return result, nil
}

// ResolvePending 解析指向该笔记标题的待解析链接
func (s *syncService) ResolvePending(ctx context.Context, note *domain.Note) (int, error) {
	pending, err := s.linkRepo.ListPendingByTitle(ctx, note.Title)
	if err != nil {
		return 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if len(pending) == 0 {
		return 0, nil
	}

	resolved := 0
	for _, link := range pending {
		if err := s.linkRepo.Resolve(ctx, link.ID, note.ID); err != nil {
			global.Logger.Warn("pending link resolve failed",
				zap.Int64("linkId", link.ID),
				zap.Int64(logger.FieldTargetID, note.ID),
				zap.Error(err),
			)
			continue
		}
		resolved++

		if link.SourceNoteID == note.ID {
			continue
		}
		exists, err := s.edgeRepo.ExistsBetween(ctx, link.SourceNoteID, note.ID)
		if err != nil || exists {
			continue
		}
		edge, err := s.edgeRepo.Create(ctx, &domain.Edge{
			SourceNoteID:     link.SourceNoteID,
			TargetNoteID:     note.ID,
			RelationshipType: domain.RelationReferences,
			IsManual:         false,
		})
		if err != nil {
			global.Logger.Warn("mirror edge create failed",
				zap.Int64(logger.FieldNoteID, link.SourceNoteID),
				zap.Int64(logger.FieldTargetID, note.ID),
				zap.Error(err),
			)
			continue
		}
		s.events.Publish(dto.WSActionEdgeCreated, &dto.WSEdgeEventData{
			EdgeID:           edge.ID,
			SourceNoteID:     edge.SourceNoteID,
			TargetNoteID:     edge.TargetNoteID,
			RelationshipType: string(edge.RelationshipType),
		})
	}

	if resolved > 0 {
		global.Logger.Info("pending links resolved",
			zap.Int64(logger.FieldTargetID, note.ID),
			zap.String(logger.FieldTitle, note.Title),
			zap.Int(logger.FieldCount, resolved),
		)
	}
	return resolved, nil
}

var _ SyncService = (*syncService)(nil)
