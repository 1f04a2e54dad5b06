package service

import (
	"context"
	"errors"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/diff"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NoteHistoryService 笔记历史版本
// 每次内容变更的保存追加一个版本，保留策略由清理任务执行
type NoteHistoryService interface {
	// Record 为笔记追加下一个历史版本
	Record(ctx context.Context, note *domain.Note) error

	// List 分页返回笔记的历史版本，不含内容，版本号倒序
	List(ctx context.Context, params *dto.NoteHistoryListRequest) ([]*dto.NoteHistoryDTO, int64, error)

	// Get 返回单个历史版本，含内容
	Get(ctx context.Context, params *dto.NoteHistoryGetRequest) (*dto.NoteHistoryDTO, error)

	// Diff 对比两个历史版本，ToID 为 0 时与当前内容比较
	Diff(ctx context.Context, params *dto.HistoryDiffRequest) (*dto.HistoryDiffDTO, error)

	// Prune 按保留策略清理旧版本：超出保留版本数且早于保留期的被删除
	Prune(ctx context.Context) error

	// PurgeNote 删除笔记的全部历史，笔记被物理清除时调用
	PurgeNote(ctx context.Context, noteID int64) error
}

type noteHistoryService struct {
	noteRepo    domain.NoteRepository
	historyRepo domain.NoteHistoryRepository
	config      *ServiceConfig
}

// NewNoteHistoryService 创建 NoteHistoryService 实例
func NewNoteHistoryService(noteRepo domain.NoteRepository, historyRepo domain.NoteHistoryRepository, config *ServiceConfig) NoteHistoryService {
	return &noteHistoryService{
		noteRepo:    noteRepo,
		historyRepo: historyRepo,
		config:      config,
	}
}

// Record 为笔记追加下一个历史版本
func (s *noteHistoryService) Record(ctx context.Context, note *domain.Note) error {
	latest, err := s.historyRepo.GetLatestVersion(ctx, note.ID)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	_, err = s.historyRepo.Create(ctx, &domain.NoteHistory{
		NoteID:  note.ID,
		Title:   note.Title,
		Content: note.Content,
		Version: latest + 1,
	})
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// List 分页返回笔记的历史版本
func (s *noteHistoryService) List(ctx context.Context, params *dto.NoteHistoryListRequest) ([]*dto.NoteHistoryDTO, int64, error) {
	histories, total, err := s.historyRepo.ListByNoteID(ctx, params.NoteID, params.Page, params.PageSize)
	if err != nil {
		return nil, 0, code.ErrorDBQuery.WithDetails(err.Error())
	}
	items := make([]*dto.NoteHistoryDTO, 0, len(histories))
	for _, h := range histories {
		items = append(items, dto.HistoryFromDomain(h, false))
	}
	return items, total, nil
}

// Get 返回单个历史版本
func (s *noteHistoryService) Get(ctx context.Context, params *dto.NoteHistoryGetRequest) (*dto.NoteHistoryDTO, error) {
	history, err := s.historyRepo.GetByID(ctx, params.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorHistoryNotFound
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return dto.HistoryFromDomain(history, true), nil
}

// Diff 对比两个历史版本
func (s *noteHistoryService) Diff(ctx context.Context, params *dto.HistoryDiffRequest) (*dto.HistoryDiffDTO, error) {
	from, err := s.historyRepo.GetByID(ctx, params.FromID)
	if err != nil || from.NoteID != params.NoteID {
		return nil, code.ErrorHistoryNotFound
	}

	toContent := ""
	var toVersion int64
	if params.ToID > 0 {
		to, err := s.historyRepo.GetByID(ctx, params.ToID)
		if err != nil || to.NoteID != params.NoteID {
			return nil, code.ErrorHistoryNotFound
		}
		toContent = to.Content
		toVersion = to.Version
	} else {
		// ToID 为 0 与当前内容比较
		note, err := s.noteRepo.GetByID(ctx, params.NoteID)
		if err != nil {
			return nil, code.ErrorNoteNotFound
		}
		toContent = note.Content
	}

	return &dto.HistoryDiffDTO{
		NoteID:      params.NoteID,
		FromVersion: from.Version,
		ToVersion:   toVersion,
		Diff:        diff.Unified(from.Content, toContent),
	}, nil
}

// Prune 按保留策略清理旧版本
func (s *noteHistoryService) Prune(ctx context.Context) error {
	retention := s.config.App.HistoryRetentionTime
	keep := s.config.App.HistoryKeepVersions
	if retention == "" || retention == "0" || keep <= 0 {
		return nil
	}
	d, err := util.ParseDuration(retention)
	if err != nil || d <= 0 {
		global.Logger.Warn("invalid history retention, prune skipped",
			zap.String("retention", retention),
		)
		return nil
	}

	cutoff := time.Now().Add(-d)
	noteIDs, err := s.historyRepo.ListNoteIDsWithOldHistory(ctx, cutoff)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	for _, noteID := range noteIDs {
		if err := s.historyRepo.DeleteOldVersions(ctx, noteID, cutoff, keep); err != nil {
			global.Logger.Warn("history prune failed for note",
				zap.Int64(logger.FieldNoteID, noteID),
				zap.Error(err),
			)
		}
	}
	if len(noteIDs) > 0 {
		global.Logger.Info("note history pruned", zap.Int(logger.FieldCount, len(noteIDs)))
	}
	return nil
}

// PurgeNote 删除笔记的全部历史
func (s *noteHistoryService) PurgeNote(ctx context.Context, noteID int64) error {
	if err := s.historyRepo.DeleteByNoteID(ctx, noteID); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

var _ NoteHistoryService = (*noteHistoryService)(nil)
