// Package domain 定义领域模型和接口
package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Note 笔记领域模型
type Note struct {
	ID          int64
	Title       string
	Content     string
	ContentHash string
	Tags        []string
	PositionX   float64
	PositionY   float64
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Excerpt 返回纯文本摘要，超出 maxRunes 时截断并追加省略号
func Excerpt(plain string, maxRunes int) string {
	if utf8.RuneCountInString(plain) <= maxRunes {
		return plain
	}
	runes := []rune(plain)
	return string(runes[:maxRunes]) + "..."
}

// TailExcerpt 返回纯文本末尾摘要，笔记结尾通常是最新写下的内容
func TailExcerpt(plain string, maxRunes int) string {
	if utf8.RuneCountInString(plain) <= maxRunes {
		return plain
	}
	runes := []rune(plain)
	return "..." + string(runes[len(runes)-maxRunes:])
}

// HasTag 判断笔记是否带有指定标签，忽略大小写
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SharedTagCount 统计与另一笔记共享的标签数量，忽略大小写
func (n *Note) SharedTagCount(other *Note) int {
	if other == nil || len(n.Tags) == 0 || len(other.Tags) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(n.Tags))
	for _, t := range n.Tags {
		seen[strings.ToLower(t)] = struct{}{}
	}
	count := 0
	for _, t := range other.Tags {
		if _, ok := seen[strings.ToLower(t)]; ok {
			count++
		}
	}
	return count
}

// UpdatedWithin 判断笔记是否在最近 d 时间内更新过
func (n *Note) UpdatedWithin(d time.Duration) bool {
	return time.Since(n.UpdatedAt) <= d
}
