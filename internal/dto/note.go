// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	PositionX float64    `json:"positionX"`
	PositionY float64    `json:"positionY"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// NoteListItemDTO Note list item without full content
// NoteListItemDTO 列表用笔记项，不含完整内容
type NoteListItemDTO struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Excerpt   string     `json:"excerpt"`
	Tags      []string   `json:"tags"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// SyncResultDTO Link sync summary returned alongside note writes
// SyncResultDTO 随笔记写入返回的链接同步摘要
type SyncResultDTO struct {
	LinksAdded   int `json:"linksAdded"`
	LinksRemoved int `json:"linksRemoved"`
	LinksKept    int `json:"linksKept"`
	EdgesCreated int `json:"edgesCreated"`
}

// SyncResultFromDomain builds a SyncResultDTO from the domain result
func SyncResultFromDomain(r *domain.SyncResult) *SyncResultDTO {
	if r == nil {
		return nil
	}
	return &SyncResultDTO{
		LinksAdded:   r.LinksAdded,
		LinksRemoved: r.LinksRemoved,
		LinksKept:    r.LinksKept,
		EdgesCreated: r.EdgesCreated,
	}
}

// NoteWithSyncDTO Note payload plus the sync summary for the write that produced it
// NoteWithSyncDTO 笔记数据及产生它的那次写入的同步摘要
type NoteWithSyncDTO struct {
	*NoteDTO
	Sync *SyncResultDTO `json:"sync,omitempty"`
}

// NoteFromDomain builds a NoteDTO from the domain model
func NoteFromDomain(n *domain.Note) *NoteDTO {
	if n == nil {
		return nil
	}
	return &NoteDTO{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		PositionX: n.PositionX,
		PositionY: n.PositionY,
		CreatedAt: timex.Time(n.CreatedAt),
		UpdatedAt: timex.Time(n.UpdatedAt),
	}
}

// NoteCreateRequest Request parameters for creating a note
// 创建笔记的请求参数
type NoteCreateRequest struct {
	Title     string   `json:"title" form:"title" binding:"required,max=512" example:"Oceans"`
	Content   string   `json:"content" form:"content" binding:""`
	Tags      []string `json:"tags" form:"tags"`
	PositionX float64  `json:"positionX" form:"positionX"`
	PositionY float64  `json:"positionY" form:"positionY"`
}

// NoteUpdateRequest Request parameters for updating a note
// 更新笔记的请求参数，内容变更会触发链接同步
type NoteUpdateRequest struct {
	ID        int64     `json:"id" form:"id" binding:"required" example:"1"`
	Title     *string   `json:"title" form:"title"`
	Content   *string   `json:"content" form:"content"`
	Tags      *[]string `json:"tags" form:"tags"`
	PositionX *float64  `json:"positionX" form:"positionX"`
	PositionY *float64  `json:"positionY" form:"positionY"`
}

// NoteGetRequest Request parameters for fetching a single note
type NoteGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required" example:"1"`
}

// NoteDeleteRequest Request parameters for deleting a note
type NoteDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required" example:"1"`
}

// NoteListRequest Request parameters for the paged note list
// 分页笔记列表请求参数，keyword 匹配标题或内容
type NoteListRequest struct {
	Keyword  string `json:"keyword" form:"keyword"`
	Page     int    `json:"page" form:"page" example:"1"`
	PageSize int    `json:"pageSize" form:"pageSize" example:"20"`
}
