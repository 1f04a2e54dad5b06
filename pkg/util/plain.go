package util

import (
	"regexp"
	"strings"
)

var (
	fencedCodeRegex  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRegex  = regexp.MustCompile("`([^`]*)`")
	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
	markdownImgRegex = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	markdownURLRegex = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headingRegex     = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	quoteRegex       = regexp.MustCompile(`(?m)^>[ \t]?`)
	listMarkerRegex  = regexp.MustCompile(`(?m)^[ \t]*([-*+]|\d+\.)[ \t]+`)
	emphasisRegex    = regexp.MustCompile(`[*_~]{1,3}`)
	spaceRegex       = regexp.MustCompile(`\s+`)
)

// PlainText projects markdown note content onto plain text: frontmatter,
// code fences, HTML tags and markdown markup are stripped, wiki-link tokens
// are replaced by their display text, and whitespace runs collapse to a
// single space.
// PlainText 将 Markdown 内容投影为纯文本：去掉 frontmatter、代码块、
// HTML 标签和 Markdown 标记，双链替换为显示文本，空白折叠为单个空格
func PlainText(content string) string {
	_, body, _ := ParseFrontmatter(content)

	body = fencedCodeRegex.ReplaceAllString(body, " ")
	body = inlineCodeRegex.ReplaceAllString(body, "$1")
	body = htmlTagRegex.ReplaceAllString(body, " ")

	body = replaceWikiLinks(body)
	body = markdownImgRegex.ReplaceAllString(body, "$1")
	body = markdownURLRegex.ReplaceAllString(body, "$1")
	body = headingRegex.ReplaceAllString(body, "")
	body = quoteRegex.ReplaceAllString(body, "")
	body = listMarkerRegex.ReplaceAllString(body, "")
	body = emphasisRegex.ReplaceAllString(body, "")

	return strings.TrimSpace(spaceRegex.ReplaceAllString(body, " "))
}

// replaceWikiLinks rewrites [[Target|Alias]] tokens to their display text so
// the projection reads the way the note renders.
func replaceWikiLinks(content string) string {
	links := ParseWikiLinks(content)
	if len(links) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, l := range links {
		b.WriteString(content[last:l.Start])
		if l.Alias != "" {
			b.WriteString(l.Alias)
		} else {
			b.WriteString(l.Title)
		}
		last = l.End
	}
	b.WriteString(content[last:])
	return b.String()
}
