package service

import (
	"context"
	"sort"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"go.uber.org/zap"
)

// 候选打分权重：共享标签权重高于最近活跃
const (
	recencyWeight   = 2
	sharedTagWeight = 3
	recencyWindow   = 7 * 24 * time.Hour
)

// RankService 为 AI 建议挑选并排序候选笔记，限制请求体量
type RankService interface {
	// RankCandidates 返回与 noteID 最相关的候选，排除自身与已连接目标；
	// 得分 = 2*近期活跃 + 3*共享标签数，平分按更新时间取新
	RankCandidates(ctx context.Context, noteID int64, limit int) ([]*domain.RankedCandidate, error)
}

type rankService struct {
	noteRepo domain.NoteRepository
	linkRepo domain.LinkRepository
	edgeRepo domain.EdgeRepository
	config   *ServiceConfig
}

// NewRankService 创建 RankService 实例
func NewRankService(noteRepo domain.NoteRepository, linkRepo domain.LinkRepository, edgeRepo domain.EdgeRepository, config *ServiceConfig) RankService {
	return &rankService{
		noteRepo: noteRepo,
		linkRepo: linkRepo,
		edgeRepo: edgeRepo,
		config:   config,
	}
}

// RankCandidates 返回排序后的候选列表
func (s *rankService) RankCandidates(ctx context.Context, noteID int64, limit int) ([]*domain.RankedCandidate, error) {
	if limit <= 0 {
		limit = s.config.MaxCandidatesOrDefault()
	}

	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorNoteNotFound
	}

	excluded := s.connectedIDs(ctx, noteID)
	excluded[noteID] = struct{}{}

	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	candidates := make([]*domain.RankedCandidate, 0, len(notes))
	for _, other := range notes {
		if _, ok := excluded[other.ID]; ok {
			continue
		}
		recency := 0
		if other.UpdatedWithin(recencyWindow) {
			recency = 1
		}
		shared := note.SharedTagCount(other)
		candidates = append(candidates, &domain.RankedCandidate{
			Note:           other,
			Score:          recencyWeight*recency + sharedTagWeight*shared,
			SharedTagCount: shared,
			RecencyBonus:   recency,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Note.UpdatedAt.After(candidates[j].Note.UpdatedAt)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// connectedIDs 收集已与该笔记相连的目标：已解析链接与双向连接
func (s *rankService) connectedIDs(ctx context.Context, noteID int64) map[int64]struct{} {
	connected := make(map[int64]struct{})

	links, err := s.linkRepo.ListResolvedBySource(ctx, noteID)
	if err != nil {
		global.Logger.Warn("candidate link exclusion query failed",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err),
		)
	}
	for _, l := range links {
		connected[l.TargetNoteID] = struct{}{}
	}

	edges, err := s.edgeRepo.ListByNote(ctx, noteID)
	if err != nil {
		global.Logger.Warn("candidate edge exclusion query failed",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err),
		)
	}
	for _, e := range edges {
		if e.SourceNoteID != noteID {
			connected[e.SourceNoteID] = struct{}{}
		}
		if e.TargetNoteID != noteID {
			connected[e.TargetNoteID] = struct{}{}
		}
	}
	return connected
}

var _ RankService = (*rankService)(nil)
