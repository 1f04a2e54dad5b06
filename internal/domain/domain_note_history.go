package domain

import "time"

// NoteHistory 笔记内容变更的一个历史版本
type NoteHistory struct {
	ID        int64
	NoteID    int64
	Title     string
	Content   string
	Version   int64
	CreatedAt time.Time
}
