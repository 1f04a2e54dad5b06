package model

import "github.com/Nicoding1996/momentum-notes-sub000/pkg/timex"

const TableNameNoteHistory = "note_history"

// NoteHistory mapped from table <note_history>
type NoteHistory struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	NoteID    int64      `gorm:"column:note_id;not null;index:idx_history_note" json:"noteId" form:"noteId"`
	Title     string     `gorm:"column:title" json:"title" form:"title"`
	Content   string     `gorm:"column:content" json:"content" form:"content"`
	Version   int64      `gorm:"column:version;not null;default:1" json:"version" form:"version"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
}

// TableName NoteHistory's table name
func (*NoteHistory) TableName() string {
	return TableNameNoteHistory
}
