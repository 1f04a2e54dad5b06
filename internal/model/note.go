package model

import "github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
type Note struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Title       string     `gorm:"column:title;not null;index:idx_note_title" json:"title" form:"title"`
	Content     string     `gorm:"column:content" json:"content" form:"content"`
	ContentHash string     `gorm:"column:content_hash" json:"contentHash" form:"contentHash"`
	Tags        []string   `gorm:"column:tags;serializer:json" json:"tags" form:"tags"`
	PositionX   float64    `gorm:"column:position_x;default:0" json:"positionX" form:"positionX"`
	PositionY   float64    `gorm:"column:position_y;default:0" json:"positionY" form:"positionY"`
	IsDeleted   bool       `gorm:"column:is_deleted;default:false;index:idx_note_is_deleted" json:"isDeleted" form:"isDeleted"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
