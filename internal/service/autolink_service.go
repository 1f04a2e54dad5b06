package service

import (
	"context"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"go.uber.org/zap"
)

// AutoLinkService 将通过校验的 AI 建议落为图谱连接
// 每对建议独立提交：无序对已存在连接（含手动连接）则跳过，
// 单对失败不影响其余；只有整个步骤失败才向用户报错
type AutoLinkService interface {
	// AutoLink 为单条笔记生成建议并提交，返回聚合结果与采纳的建议
	AutoLink(ctx context.Context, noteID int64) (*domain.CommitResult, []*domain.Suggestion, error)

	// AutoLinkCanvas 对整个画布生成两两建议，commit 为 true 时提交
	AutoLinkCanvas(ctx context.Context, commit bool) (*domain.CommitResult, []*domain.Suggestion, error)

	// CommitSuggestions 逐条提交建议，返回 {created, skipped} 聚合
	CommitSuggestions(ctx context.Context, suggestions []*domain.Suggestion) *domain.CommitResult
}

type autoLinkService struct {
	edgeRepo   domain.EdgeRepository
	suggestSvc SuggestService
	rankSvc    RankService
	events     EventPublisher
}

// NewAutoLinkService 创建 AutoLinkService 实例
func NewAutoLinkService(edgeRepo domain.EdgeRepository, suggestSvc SuggestService, rankSvc RankService, events EventPublisher) AutoLinkService {
	if events == nil {
		events = NopPublisher()
	}
	return &autoLinkService{
		edgeRepo:   edgeRepo,
		suggestSvc: suggestSvc,
		rankSvc:    rankSvc,
		events:     events,
	}
}

// AutoLink 为单条笔记生成建议并提交
func (s *autoLinkService) AutoLink(ctx context.Context, noteID int64) (*domain.CommitResult, []*domain.Suggestion, error) {
	suggestions, err := s.suggestSvc.Suggest(ctx, noteID, TriggerManual)
	if err != nil {
		return nil, nil, err
	}

	if len(suggestions) == 0 {
		// 区分「模型没给出建议」与「根本没有候选」，后者才算整步失败
		candidates, rankErr := s.rankSvc.RankCandidates(ctx, noteID, 1)
		if rankErr == nil && len(candidates) == 0 {
			return nil, nil, code.ErrorAutoLinkFailed.WithDetails("no link candidates")
		}
		return &domain.CommitResult{}, suggestions, nil
	}

	return s.CommitSuggestions(ctx, suggestions), suggestions, nil
}

// AutoLinkCanvas 对整个画布生成建议，按需提交
func (s *autoLinkService) AutoLinkCanvas(ctx context.Context, commit bool) (*domain.CommitResult, []*domain.Suggestion, error) {
	suggestions, err := s.suggestSvc.SuggestCanvas(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !commit {
		return &domain.CommitResult{}, suggestions, nil
	}
	return s.CommitSuggestions(ctx, suggestions), suggestions, nil
}

// CommitSuggestions 逐条提交建议
func (s *autoLinkService) CommitSuggestions(ctx context.Context, suggestions []*domain.Suggestion) *domain.CommitResult {
	result := &domain.CommitResult{}
	for _, sg := range suggestions {
		exists, err := s.edgeRepo.ExistsBetween(ctx, sg.SourceNoteID, sg.TargetNoteID)
		if err != nil {
			global.Logger.Warn("auto-link pair check failed",
				zap.Int64(logger.FieldNoteID, sg.SourceNoteID),
				zap.Int64(logger.FieldTargetID, sg.TargetNoteID),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		relType := domain.NormalizeRelationshipType(string(sg.RelationshipType), domain.DefaultRelationshipType)
		label := sg.Reason
		if label == "" {
			label = relType.Meta().Label
		}
		edge, err := s.edgeRepo.Create(ctx, &domain.Edge{
			SourceNoteID:     sg.SourceNoteID,
			TargetNoteID:     sg.TargetNoteID,
			RelationshipType: relType,
			Label:            label,
			IsManual:         false,
		})
		if err != nil {
			global.Logger.Warn("auto-link edge create failed",
				zap.Int64(logger.FieldNoteID, sg.SourceNoteID),
				zap.Int64(logger.FieldTargetID, sg.TargetNoteID),
				zap.Error(err),
			)
			result.Skipped++
			continue
		}
		result.Created++

		s.events.Publish(dto.WSActionEdgeCreated, &dto.WSEdgeEventData{
			EdgeID:           edge.ID,
			SourceNoteID:     edge.SourceNoteID,
			TargetNoteID:     edge.TargetNoteID,
			RelationshipType: string(edge.RelationshipType),
		})
	}

	if result.Created > 0 || result.Skipped > 0 {
		global.Logger.Info("auto-link committed",
			zap.Int("created", result.Created),
			zap.Int("skipped", result.Skipped),
		)
	}
	return result
}

var _ AutoLinkService = (*autoLinkService)(nil)
