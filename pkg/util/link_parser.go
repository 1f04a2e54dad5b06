// Package util provides utility functions
// util 包提供工具函数
package util

import (
	"regexp"
	"strings"
)

// wikiLinkRegex matches [[Target]], [[Target|Alias]] and ![[Target]] tokens
// wikiLinkRegex 匹配 [[目标]]、[[目标|别名]] 和 ![[目标]] 形式的链接
var wikiLinkRegex = regexp.MustCompile(`(!?)\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)

// WikiLink is a single wiki-link token found in note content.
// Start and End are byte offsets into the scanned content, End exclusive.
// WikiLink 表示笔记内容中的一个双链标记，Start/End 为字节偏移
type WikiLink struct {
	Title   string // link target title / 链接目标标题
	Alias   string // display alias, empty if none / 显示别名
	Raw     string // full matched token text / 完整匹配文本
	IsEmbed bool   // true for ![[...]] embeds / 是否为嵌入
	Start   int
	End     int
}

// ParseWikiLinks returns every wiki-link token in content in document order,
// including repeated targets. Titles are trimmed of surrounding whitespace.
// ParseWikiLinks 按出现顺序返回内容中的所有双链标记，重复目标不去重
func ParseWikiLinks(content string) []WikiLink {
	matches := wikiLinkRegex.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]WikiLink, 0, len(matches))
	for _, m := range matches {
		title := strings.TrimSpace(content[m[4]:m[5]])
		if title == "" {
			continue
		}
		link := WikiLink{
			Title:   title,
			Raw:     content[m[0]:m[1]],
			IsEmbed: m[3] > m[2],
			Start:   m[0],
			End:     m[1],
		}
		if m[6] >= 0 {
			link.Alias = strings.TrimSpace(content[m[6]:m[7]])
		}
		links = append(links, link)
	}
	return links
}
