package dto

// WebSocket action identifiers exchanged with graph subscribers.
// 与图谱订阅端交换的 WebSocket 动作标识。
const (
	// WSActionPing 心跳
	WSActionPing = "ping"
	// WSActionPong 心跳应答
	WSActionPong = "pong"
	// WSActionGraphSubscribe 订阅图谱事件，应答全量快照
	WSActionGraphSubscribe = "graph.subscribe"
	// WSActionNoteAnalyze 请求单笔记 AI 建议
	WSActionNoteAnalyze = "note.analyze"
	// WSActionNoteAutoLink 请求单笔记自动连接
	WSActionNoteAutoLink = "note.autolink"
	// WSActionGraphSynced 笔记同步完成
	WSActionGraphSynced = "graph.synced"
	// WSActionNoteUpdated 笔记已更新
	WSActionNoteUpdated = "note.updated"
	// WSActionNoteDeleted 笔记已删除
	WSActionNoteDeleted = "note.deleted"
	// WSActionEdgeCreated 关系已创建
	WSActionEdgeCreated = "edge.created"
	// WSActionEdgeUpdated 关系已更新
	WSActionEdgeUpdated = "edge.updated"
	// WSActionEdgeDeleted 关系已删除
	WSActionEdgeDeleted = "edge.deleted"
)

// WSGraphSyncedData 同步完成事件负载
type WSGraphSyncedData struct {
	NoteID       int64 `json:"noteId"`       // 笔记ID
	LinksAdded   int   `json:"linksAdded"`   // 新增链接数
	LinksRemoved int   `json:"linksRemoved"` // 移除链接数
	EdgesCreated int   `json:"edgesCreated"` // 新建关系数
}

// WSNoteEventData 笔记事件负载
type WSNoteEventData struct {
	NoteID int64  `json:"noteId"`          // 笔记ID
	Title  string `json:"title,omitempty"` // 笔记标题
}

// WSEdgeEventData 关系事件负载
type WSEdgeEventData struct {
	EdgeID           int64  `json:"edgeId"`                     // 关系ID
	SourceNoteID     int64  `json:"sourceNoteId"`               // 源笔记ID
	TargetNoteID     int64  `json:"targetNoteId"`               // 目标笔记ID
	RelationshipType string `json:"relationshipType,omitempty"` // 关系类型
}
