package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrontmatter(t *testing.T) {
	content := "---\ntitle: Oceans\ntags:\n  - marine\n---\nbody text"

	data, body, ok := ParseFrontmatter(content)
	require.True(t, ok)
	assert.Equal(t, "Oceans", data["title"])
	assert.Equal(t, "body text", body)
}

func TestParseFrontmatterAbsent(t *testing.T) {
	_, body, ok := ParseFrontmatter("just a note")
	assert.False(t, ok)
	assert.Equal(t, "just a note", body)

	// 未闭合的分隔符按正文整体处理
	_, body, ok = ParseFrontmatter("---\ntitle: Broken\nno closing")
	assert.False(t, ok)
	assert.Equal(t, "---\ntitle: Broken\nno closing", body)

	_, body, ok = ParseFrontmatter("")
	assert.False(t, ok)
	assert.Equal(t, "", body)
}
