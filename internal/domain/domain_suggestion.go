package domain

// Suggestion 通过校验的 AI 连接建议
// SourceNoteID/TargetNoteID 均已对照发送的候选集合验证
type Suggestion struct {
	SourceNoteID     int64            `json:"sourceNoteId"`
	TargetNoteID     int64            `json:"targetNoteId"`
	TargetTitle      string           `json:"targetTitle"`
	RelationshipType RelationshipType `json:"relationshipType"`
	Reason           string           `json:"reason"`
	Confidence       float64          `json:"confidence"`
}

// CommitResult 自动连接提交的聚合结果
type CommitResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
