package dto

import "github.com/Nicoding1996/momentum-notes-sub000/internal/domain"

// SuggestRequest Request parameters for single-note AI suggestions
// 单笔记 AI 建议请求参数
// Trigger 区分手动触发与输入停顿自动触发，自动触发受频率限制
type SuggestRequest struct {
	NoteID  int64  `json:"noteId" form:"noteId" binding:"required" example:"1"`
	Trigger string `json:"trigger" form:"trigger" binding:"omitempty,oneof=manual auto" example:"manual"`
}

// CanvasSuggestRequest Request parameters for whole-canvas AI suggestions
// 整板 AI 建议请求参数
type CanvasSuggestRequest struct {
	Commit bool `json:"commit" form:"commit" example:"true"`
}

// SuggestionDTO One validated AI connection suggestion
// SuggestionDTO 一条通过校验的 AI 连接建议
type SuggestionDTO struct {
	SourceNoteID     int64   `json:"sourceNoteId"`
	TargetNoteID     int64   `json:"targetNoteId"`
	TargetTitle      string  `json:"targetTitle"`
	RelationshipType string  `json:"relationshipType"`
	Reason           string  `json:"reason"`
	Confidence       float64 `json:"confidence"`
}

// SuggestionFromDomain builds a SuggestionDTO from the domain model
func SuggestionFromDomain(s *domain.Suggestion) *SuggestionDTO {
	if s == nil {
		return nil
	}
	return &SuggestionDTO{
		SourceNoteID:     s.SourceNoteID,
		TargetNoteID:     s.TargetNoteID,
		TargetTitle:      s.TargetTitle,
		RelationshipType: string(s.RelationshipType),
		Reason:           s.Reason,
		Confidence:       s.Confidence,
	}
}

// SuggestionsFromDomain builds SuggestionDTO slices from domain models
func SuggestionsFromDomain(list []*domain.Suggestion) []*SuggestionDTO {
	out := make([]*SuggestionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, SuggestionFromDomain(s))
	}
	return out
}

// AutoLinkResultDTO Aggregate result of an auto-link commit
// AutoLinkResultDTO 自动连接的聚合结果
type AutoLinkResultDTO struct {
	Created     int              `json:"created"`
	Skipped     int              `json:"skipped"`
	Suggestions []*SuggestionDTO `json:"suggestions"`
}

// AutoLinkResultFromDomain builds an AutoLinkResultDTO from the commit result and the suggestions behind it
func AutoLinkResultFromDomain(r *domain.CommitResult, suggestions []*domain.Suggestion) *AutoLinkResultDTO {
	out := &AutoLinkResultDTO{Suggestions: SuggestionsFromDomain(suggestions)}
	if r != nil {
		out.Created = r.Created
		out.Skipped = r.Skipped
	}
	return out
}
