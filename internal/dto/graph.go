package dto

import (
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// GraphNodeDTO Canvas node with position
// GraphNodeDTO 画布节点
type GraphNodeDTO struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Tags      []string   `json:"tags"`
	PositionX float64    `json:"positionX"`
	PositionY float64    `json:"positionY"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// GraphDTO Full graph snapshot for the canvas
// GraphDTO 画布用全量图快照
type GraphDTO struct {
	Nodes []*GraphNodeDTO `json:"nodes"`
	Edges []*EdgeDTO      `json:"edges"`
}

// BacklinkItem One note linking to the requested note, with fresh context
// BacklinkItem 反向链接项，上下文片段按当前内容重新计算
type BacklinkItem struct {
	SourceNoteID int64      `json:"sourceNoteId"`
	SourceTitle  string     `json:"sourceTitle"`
	LinkText     string     `json:"linkText"`
	Context      string     `json:"context"`
	UpdatedAt    timex.Time `json:"updatedAt"`
}

// OutlinkItem One resolved link going out from the requested note
// OutlinkItem 正向链接项
type OutlinkItem struct {
	TargetNoteID int64  `json:"targetNoteId"`
	TargetTitle  string `json:"targetTitle"`
	LinkText     string `json:"linkText"`
	Context      string `json:"context"`
}

// MentionItem One unlinked mention occurrence
// MentionItem 未链接提及的一次出现
type MentionItem struct {
	SourceNoteID int64  `json:"sourceNoteId"`
	SourceTitle  string `json:"sourceTitle"`
	MatchedText  string `json:"matchedText"`
	StartOffset  int    `json:"startOffset"`
	Context      string `json:"context"`
}

// MentionFromDomain builds a MentionItem from the domain candidate
func MentionFromDomain(m *domain.MentionCandidate) *MentionItem {
	if m == nil {
		return nil
	}
	return &MentionItem{
		SourceNoteID: m.SourceNoteID,
		SourceTitle:  m.SourceTitle,
		MatchedText:  m.MatchedText,
		StartOffset:  m.StartOffset,
		Context:      m.Context,
	}
}

// NoteGraphRequest Request parameters for per-note graph reads
// 反链/正链/提及查询的请求参数
type NoteGraphRequest struct {
	NoteID int64 `json:"noteId" form:"noteId" binding:"required" example:"1"`
}
