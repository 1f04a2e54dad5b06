package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextStripsMarkdown(t *testing.T) {
	content := `---
title: Demo
---

# Heading

Some **bold** and _italic_ text with ` + "`code`" + ` inline.

- item one
- item [[Linked Note|shown]] two

> quoted line

A [link](https://example.com) and an ![image](pic.png).
`

	got := PlainText(content)
	assert.Equal(t, "Heading Some bold and italic text with code inline. item one item shown two quoted line A link and an image.", got)
}

func TestPlainTextWikiLinkWithoutAlias(t *testing.T) {
	assert.Equal(t, "see Target today", PlainText("see [[Target]] today"))
}

func TestPlainTextDropsCodeFences(t *testing.T) {
	content := "before\n```go\nfunc secret() {}\n```\nafter"
	assert.Equal(t, "before after", PlainText(content))
}

func TestPlainTextStripsHTML(t *testing.T) {
	assert.Equal(t, "hello world", PlainText(`hello <span class="x">world</span>`))
}

func TestPlainTextEmpty(t *testing.T) {
	assert.Equal(t, "", PlainText(""))
	assert.Equal(t, "", PlainText("   \n\t  "))
}
