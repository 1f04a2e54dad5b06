package domain

// ScannedLink 扫描器在笔记内容中找到的一个显式引用标记
type ScannedLink struct {
	TargetTitle string
	Alias       string
	MatchedText string
	StartOffset int // byte offset into the raw content
	EndOffset   int // exclusive
	IsEmbed     bool
}

// MentionCandidate 未链接提及候选，一次出现一条
type MentionCandidate struct {
	SourceNoteID int64  `json:"sourceNoteId"`
	SourceTitle  string `json:"sourceTitle"`
	MatchedText  string `json:"matchedText"`
	StartOffset  int    `json:"startOffset"`
	Context      string `json:"context"`
}

// RankedCandidate 排序后的 AI 建议候选
type RankedCandidate struct {
	Note           *Note
	Score          int
	SharedTagCount int
	RecencyBonus   int
}
