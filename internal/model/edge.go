package model

import "github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

const TableNameEdge = "edge"

// Edge mapped from table <edge>
// is_manual 标记画布拖拽创建的连线，去重检查时豁免
type Edge struct {
	ID               int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	SourceNoteID     int64      `gorm:"column:source_note_id;not null;index:idx_edge_source" json:"sourceNoteId" form:"sourceNoteId"`
	TargetNoteID     int64      `gorm:"column:target_note_id;not null;index:idx_edge_target" json:"targetNoteId" form:"targetNoteId"`
	RelationshipType string     `gorm:"column:relationship_type;not null;index:idx_edge_relationship" json:"relationshipType" form:"relationshipType"`
	Label            string     `gorm:"column:label" json:"label" form:"label"`
	IsManual         bool       `gorm:"column:is_manual;default:false" json:"isManual" form:"isManual"`
	CreatedAt        timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Edge's table name
func (*Edge) TableName() string {
	return TableNameEdge
}
