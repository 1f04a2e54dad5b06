package llm

import (
	"strings"

	"github.com/bytedance/sonic"
)

// Suggestion 模型返回的单条连接建议
// 单笔记模式填 Id，整板模式填 SourceId 与 TargetId
type Suggestion struct {
	Id               int64   `json:"id"`
	SourceId         int64   `json:"sourceId"`
	TargetId         int64   `json:"targetId"`
	RelationshipType string  `json:"relationshipType"`
	Reason           string  `json:"reason"`
	Confidence       float64 `json:"confidence"`
}

// DecodeSuggestions 从模型原始回复中解析建议列表
// 依次尝试：整体解析、提取首个配平的方括号子串解析，均失败时返回空列表而不是错误
func DecodeSuggestions(raw string) []Suggestion {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Suggestion{}
	}

	var items []Suggestion
	if err := sonic.Unmarshal([]byte(raw), &items); err == nil {
		return items
	}

	from := 0
	for {
		sub, next, ok := balancedArrayFrom(raw, from)
		if !ok {
			break
		}
		items = items[:0]
		if err := sonic.Unmarshal([]byte(sub), &items); err == nil {
			return items
		}
		from = next
	}

	return []Suggestion{}
}

// ExtractJSONArray 返回 s 中首个配平的方括号子串
// 跳过字符串字面量内部的方括号
func ExtractJSONArray(s string) (string, bool) {
	sub, _, ok := balancedArrayFrom(s, 0)
	return sub, ok
}

func balancedArrayFrom(s string, from int) (string, int, bool) {
	if from >= len(s) {
		return "", from, false
	}
	start := strings.IndexByte(s[from:], '[')
	if start < 0 {
		return "", len(s), false
	}
	start += from

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], start + 1, true
			}
		}
	}
	return "", start + 1, false
}

// ClampConfidence 将置信度收敛到 [0, 1]
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
