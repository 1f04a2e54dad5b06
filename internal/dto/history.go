package dto

import (
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// NoteHistoryDTO Note history version, content omitted in lists
// NoteHistoryDTO 笔记历史版本，列表时不返回内容
type NoteHistoryDTO struct {
	ID        int64      `json:"id"`
	NoteID    int64      `json:"noteId"`
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	Version   int64      `json:"version"`
	CreatedAt timex.Time `json:"createdAt"`
}

// HistoryFromDomain builds a NoteHistoryDTO from the domain model
func HistoryFromDomain(h *domain.NoteHistory, withContent bool) *NoteHistoryDTO {
	if h == nil {
		return nil
	}
	d := &NoteHistoryDTO{
		ID:        h.ID,
		NoteID:    h.NoteID,
		Title:     h.Title,
		Version:   h.Version,
		CreatedAt: timex.Time(h.CreatedAt),
	}
	if withContent {
		d.Content = h.Content
	}
	return d
}

// NoteHistoryListRequest Request parameters for listing note history
type NoteHistoryListRequest struct {
	NoteID   int64 `json:"noteId" form:"noteId" binding:"required" example:"1"`
	Page     int   `json:"page" form:"page" example:"1"`
	PageSize int   `json:"pageSize" form:"pageSize" example:"10"`
}

// NoteHistoryGetRequest Request parameters for one history version
type NoteHistoryGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required" example:"1"`
}

// HistoryDiffRequest Request parameters for diffing two versions
// 对比两个历史版本的请求参数，ToID 为 0 时与当前内容比较
type HistoryDiffRequest struct {
	NoteID int64 `json:"noteId" form:"noteId" binding:"required" example:"1"`
	FromID int64 `json:"fromId" form:"fromId" binding:"required" example:"1"`
	ToID   int64 `json:"toId" form:"toId" example:"2"`
}

// HistoryDiffDTO Unified diff between two versions
type HistoryDiffDTO struct {
	NoteID      int64  `json:"noteId"`
	FromVersion int64  `json:"fromVersion"`
	ToVersion   int64  `json:"toVersion"`
	Diff        string `json:"diff"`
}
