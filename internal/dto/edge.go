package dto

import (
	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"
)

// EdgeDTO Edge data transfer object
// EdgeDTO 连线数据传输对象
type EdgeDTO struct {
	ID               int64      `json:"id"`
	SourceNoteID     int64      `json:"sourceNoteId"`
	TargetNoteID     int64      `json:"targetNoteId"`
	RelationshipType string     `json:"relationshipType"`
	Label            string     `json:"label"`
	IsManual         bool       `json:"isManual"`
	CreatedAt        timex.Time `json:"createdAt"`
}

// EdgeFromDomain builds an EdgeDTO from the domain model
func EdgeFromDomain(e *domain.Edge) *EdgeDTO {
	if e == nil {
		return nil
	}
	return &EdgeDTO{
		ID:               e.ID,
		SourceNoteID:     e.SourceNoteID,
		TargetNoteID:     e.TargetNoteID,
		RelationshipType: string(e.RelationshipType),
		Label:            e.Label,
		IsManual:         e.IsManual,
		CreatedAt:        timex.Time(e.CreatedAt),
	}
}

// EdgeCreateRequest Request parameters for a manual drag-connect edge
// 手动拖拽创建连线的请求参数
type EdgeCreateRequest struct {
	SourceNoteID     int64  `json:"sourceNoteId" form:"sourceNoteId" binding:"required" example:"1"`
	TargetNoteID     int64  `json:"targetNoteId" form:"targetNoteId" binding:"required" example:"2"`
	RelationshipType string `json:"relationshipType" form:"relationshipType" example:"related-to"`
	Label            string `json:"label" form:"label"`
}

// EdgeUpdateRequest Request parameters for retyping or relabeling an edge
type EdgeUpdateRequest struct {
	ID               int64  `json:"id" form:"id" binding:"required" example:"1"`
	RelationshipType string `json:"relationshipType" form:"relationshipType" binding:"required" example:"supports"`
	Label            string `json:"label" form:"label"`
}

// EdgeDeleteRequest Request parameters for deleting an edge
type EdgeDeleteRequest struct {
	ID int64 `json:"id" form:"id" binding:"required" example:"1"`
}

// RelationshipTypeDTO Relationship reference data for the canvas legend
// RelationshipTypeDTO 关系类型参考数据
type RelationshipTypeDTO struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}
