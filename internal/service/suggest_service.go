package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/global"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/llm"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/logger"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// 建议触发方式
const (
	TriggerManual = "manual"
	TriggerAuto   = "auto"
)

// canvasKey 全画布建议在并发控制里占用的虚拟笔记 ID
const canvasKey int64 = 0

// SuggestService 调用语言模型生成连接建议
// 模型输出视为不可信文本：解码三级回退，ID 对照实际发送的候选集合校验，
// 置信度截断到 [0,1] 并过滤低于阈值的项；格式错误永远不上抛
type SuggestService interface {
	// Suggest 为单条笔记生成建议，trigger 为 manual 或 auto；
	// auto 触发受同笔记最小间隔限制，同一笔记同时只允许一个在途请求
	Suggest(ctx context.Context, noteID int64, trigger string) ([]*domain.Suggestion, error)

	// SuggestCanvas 对整个画布做两两关系建议
	SuggestCanvas(ctx context.Context) ([]*domain.Suggestion, error)
}

type suggestService struct {
	noteRepo domain.NoteRepository
	rankSvc  RankService
	client   llm.Client
	config   *ServiceConfig
	sf       *singleflight.Group

	mu       sync.Mutex
	busy     map[int64]struct{}
	lastAuto map[int64]time.Time
}

// NewSuggestService 创建 SuggestService 实例，client 为 nil 时建议功能视为未配置
func NewSuggestService(noteRepo domain.NoteRepository, rankSvc RankService, client llm.Client, config *ServiceConfig) SuggestService {
	return &suggestService{
		noteRepo: noteRepo,
		rankSvc:  rankSvc,
		client:   client,
		config:   config,
		sf:       &singleflight.Group{},
		busy:     make(map[int64]struct{}),
		lastAuto: make(map[int64]time.Time),
	}
}

// Suggest 为单条笔记生成连接建议
func (s *suggestService) Suggest(ctx context.Context, noteID int64, trigger string) ([]*domain.Suggestion, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if trigger == TriggerAuto && !s.allowAuto(noteID) {
		return nil, code.ErrorSuggestionRateLimited
	}
	if !s.acquire(noteID) {
		return nil, code.ErrorSuggestionInFlight
	}
	defer s.release(noteID)

	v, err, _ := s.sf.Do(fmt.Sprintf("suggest:%d", noteID), func() (interface{}, error) {
		return s.suggestNote(ctx, noteID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Suggestion), nil
}

// SuggestCanvas 对整个画布做两两关系建议
func (s *suggestService) SuggestCanvas(ctx context.Context) ([]*domain.Suggestion, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !s.acquire(canvasKey) {
		return nil, code.ErrorSuggestionInFlight
	}
	defer s.release(canvasKey)

	v, err, _ := s.sf.Do("suggest:canvas", func() (interface{}, error) {
		return s.suggestCanvas(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Suggestion), nil
}

func (s *suggestService) ready() error {
	if s.client == nil || !s.config.AI.Enable {
		return code.ErrorAIDisabled
	}
	return nil
}

// allowAuto 检查并登记自动触发时间，间隔不足时拒绝
func (s *suggestService) allowAuto(noteID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if last, ok := s.lastAuto[noteID]; ok && now.Sub(last) < s.config.AutoRateLimitOrDefault() {
		return false
	}
	s.lastAuto[noteID] = now
	return true
}

func (s *suggestService) acquire(noteID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.busy[noteID]; ok {
		return false
	}
	s.busy[noteID] = struct{}{}
	return true
}

func (s *suggestService) release(noteID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.busy, noteID)
}

func (s *suggestService) suggestNote(ctx context.Context, noteID int64) ([]*domain.Suggestion, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, code.ErrorNoteNotFound
	}

	candidates, err := s.rankSvc.RankCandidates(ctx, noteID, s.config.MaxCandidatesOrDefault())
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []*domain.Suggestion{}, nil
	}

	system, user := s.buildNotePrompt(note, candidates)
	raw, err := s.client.Complete(ctx, system, user)
	if err != nil {
		global.Logger.Warn("suggestion request failed",
			zap.Int64(logger.FieldNoteID, noteID),
			zap.Error(err),
		)
		return nil, code.ErrorAIService.WithDetails(err.Error())
	}

	candidateSet := make(map[int64]*domain.Note, len(candidates))
	for _, c := range candidates {
		candidateSet[c.Note.ID] = c.Note
	}
	return s.validateNote(noteID, candidateSet, llm.DecodeSuggestions(raw)), nil
}

func (s *suggestService) suggestCanvas(ctx context.Context) ([]*domain.Suggestion, error) {
	notes, err := s.noteRepo.ListAll(ctx)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if len(notes) < 2 {
		return []*domain.Suggestion{}, nil
	}

	system, user := s.buildCanvasPrompt(notes)
	raw, err := s.client.Complete(ctx, system, user)
	if err != nil {
		global.Logger.Warn("canvas suggestion request failed", zap.Error(err))
		return nil, code.ErrorAIService.WithDetails(err.Error())
	}

	noteSet := make(map[int64]*domain.Note, len(notes))
	for _, n := range notes {
		noteSet[n.ID] = n
	}
	return s.validateCanvas(noteSet, llm.DecodeSuggestions(raw)), nil
}

// buildNotePrompt 组装单笔记建议提示词：末尾摘要 + 标签 + 候选列表
func (s *suggestService) buildNotePrompt(note *domain.Note, candidates []*domain.RankedCandidate) (string, string) {
	var system strings.Builder
	system.WriteString("You suggest connections between notes in a personal knowledge graph. ")
	system.WriteString("Reply with a JSON array only, no prose. Each element: ")
	system.WriteString(`{"id": <candidate id>, "relationshipType": "<type>", "reason": "<short phrase>", "confidence": <0..1>}. `)
	system.WriteString("Allowed relationship types: ")
	system.WriteString(relationshipTypeList())
	system.WriteString(". Suggest only genuinely related candidates; an empty array is a valid answer.")

	var user strings.Builder
	fmt.Fprintf(&user, "Current note: %q\n", note.Title)
	if len(note.Tags) > 0 {
		fmt.Fprintf(&user, "Tags: %s\n", strings.Join(note.Tags, ", "))
	}
	excerpt := domain.TailExcerpt(util.PlainText(note.Content), s.config.ExcerptMaxCharsOrDefault())
	if excerpt != "" {
		fmt.Fprintf(&user, "Latest content: %s\n", excerpt)
	}
	user.WriteString("\nCandidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&user, "- id=%d title=%q", c.Note.ID, c.Note.Title)
		if len(c.Note.Tags) > 0 {
			fmt.Fprintf(&user, " tags=%s", strings.Join(c.Note.Tags, ","))
		}
		user.WriteString("\n")
	}
	return system.String(), user.String()
}

// buildCanvasPrompt 组装全画布建议提示词：每条笔记的 ID/标题/摘要/标签
func (s *suggestService) buildCanvasPrompt(notes []*domain.Note) (string, string) {
	var system strings.Builder
	system.WriteString("You suggest pairwise connections between notes in a personal knowledge graph. ")
	system.WriteString("Reply with a JSON array only, no prose. Each element: ")
	system.WriteString(`{"sourceId": <note id>, "targetId": <note id>, "relationshipType": "<type>", "reason": "<short phrase>", "confidence": <0..1>}. `)
	system.WriteString("Allowed relationship types: ")
	system.WriteString(relationshipTypeList())
	system.WriteString(". Suggest only genuinely related pairs; an empty array is a valid answer.")

	var user strings.Builder
	user.WriteString("Notes on the canvas:\n")
	max := s.config.ExcerptMaxCharsOrDefault()
	for _, n := range notes {
		fmt.Fprintf(&user, "- id=%d title=%q", n.ID, n.Title)
		if len(n.Tags) > 0 {
			fmt.Fprintf(&user, " tags=%s", strings.Join(n.Tags, ","))
		}
		if excerpt := domain.Excerpt(util.PlainText(n.Content), max); excerpt != "" {
			fmt.Fprintf(&user, " excerpt=%q", excerpt)
		}
		user.WriteString("\n")
	}
	return system.String(), user.String()
}

// validateNote 校验单笔记模式的模型输出，未知 ID 与低置信度项被丢弃
func (s *suggestService) validateNote(noteID int64, candidates map[int64]*domain.Note, raw []llm.Suggestion) []*domain.Suggestion {
	threshold := s.config.AIThresholdOrDefault()
	out := make([]*domain.Suggestion, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))

	for _, item := range raw {
		targetID := item.Id
		if targetID == 0 {
			targetID = item.TargetId
		}
		target, ok := candidates[targetID]
		if !ok {
			global.Logger.Debug("suggestion dropped: unknown candidate id",
				zap.Int64(logger.FieldNoteID, noteID),
				zap.Int64(logger.FieldTargetID, targetID),
			)
			continue
		}
		if _, dup := seen[targetID]; dup {
			continue
		}
		confidence := llm.ClampConfidence(item.Confidence)
		if confidence < threshold {
			global.Logger.Debug("suggestion dropped: below threshold",
				zap.Int64(logger.FieldNoteID, noteID),
				zap.Int64(logger.FieldTargetID, targetID),
				zap.Float64("confidence", confidence),
			)
			continue
		}
		seen[targetID] = struct{}{}
		out = append(out, &domain.Suggestion{
			SourceNoteID:     noteID,
			TargetNoteID:     targetID,
			TargetTitle:      target.Title,
			RelationshipType: domain.NormalizeRelationshipType(item.RelationshipType, domain.DefaultRelationshipType),
			Reason:           strings.TrimSpace(item.Reason),
			Confidence:       confidence,
		})
	}
	return out
}

// validateCanvas 校验全画布模式的模型输出，无序对去重
func (s *suggestService) validateCanvas(notes map[int64]*domain.Note, raw []llm.Suggestion) []*domain.Suggestion {
	threshold := s.config.AIThresholdOrDefault()
	out := make([]*domain.Suggestion, 0, len(raw))
	seen := make(map[[2]int64]struct{}, len(raw))

	for _, item := range raw {
		target, okT := notes[item.TargetId]
		_, okS := notes[item.SourceId]
		if !okS || !okT || item.SourceId == item.TargetId {
			global.Logger.Debug("canvas suggestion dropped: invalid pair",
				zap.Int64(logger.FieldNoteID, item.SourceId),
				zap.Int64(logger.FieldTargetID, item.TargetId),
			)
			continue
		}
		pair := orderedPair(item.SourceId, item.TargetId)
		if _, dup := seen[pair]; dup {
			continue
		}
		confidence := llm.ClampConfidence(item.Confidence)
		if confidence < threshold {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, &domain.Suggestion{
			SourceNoteID:     item.SourceId,
			TargetNoteID:     item.TargetId,
			TargetTitle:      target.Title,
			RelationshipType: domain.NormalizeRelationshipType(item.RelationshipType, domain.DefaultRelationshipType),
			Reason:           strings.TrimSpace(item.Reason),
			Confidence:       confidence,
		})
	}
	return out
}

func relationshipTypeList() string {
	types := domain.AllRelationshipTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t.Type))
	}
	return strings.Join(names, ", ")
}

func orderedPair(a, b int64) [2]int64 {
	if a > b {
		a, b = b, a
	}
	return [2]int64{a, b}
}

var _ SuggestService = (*suggestService)(nil)
