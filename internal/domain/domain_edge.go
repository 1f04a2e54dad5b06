package domain

import "time"

// Edge 画布上两个笔记之间的连线
// 手动拖拽、链接镜像或 AI 自动连接产生，仅由用户显式删除
type Edge struct {
	ID               int64
	SourceNoteID     int64
	TargetNoteID     int64
	RelationshipType RelationshipType
	Label            string
	IsManual         bool
	CreatedAt        time.Time
}
