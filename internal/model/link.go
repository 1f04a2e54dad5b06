package model

import "github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

const TableNameLink = "link"

// Link mapped from table <link>
// target_note_id 为 0 表示目标标题尚未解析到笔记
type Link struct {
	ID               int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	SourceNoteID     int64      `gorm:"column:source_note_id;not null;index:idx_link_source" json:"sourceNoteId" form:"sourceNoteId"`
	TargetNoteID     int64      `gorm:"column:target_note_id;not null;default:0;index:idx_link_target" json:"targetNoteId" form:"targetNoteId"`
	TargetTitle      string     `gorm:"column:target_title;not null;index:idx_link_target_title" json:"targetTitle" form:"targetTitle"`
	TextOffset       int        `gorm:"column:text_offset;default:0" json:"textOffset" form:"textOffset"`
	RelationshipType string     `gorm:"column:relationship_type;default:references" json:"relationshipType" form:"relationshipType"`
	CreatedAt        timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName Link's table name
func (*Link) TableName() string {
	return TableNameLink
}
