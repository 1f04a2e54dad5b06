package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContext(t *testing.T) {
	text := "abcdefghij"

	assert.Equal(t, "...cdefg...", ExtractContext(text, 4, 5, 2))
	assert.Equal(t, "abcd...", ExtractContext(text, 0, 1, 3))
	assert.Equal(t, "...ghij", ExtractContext(text, 9, 10, 3))
	assert.Equal(t, text, ExtractContext(text, 4, 5, 100))
}

func TestExtractContextInvalidRange(t *testing.T) {
	text := "abc"
	assert.Equal(t, "", ExtractContext(text, -1, 2, 5))
	assert.Equal(t, "", ExtractContext(text, 0, 4, 5))
	assert.Equal(t, "", ExtractContext(text, 2, 1, 5))
}

func TestExtractContextMultibyte(t *testing.T) {
	text := "日本語のテキストです"
	start := strings.Index(text, "テキスト")
	end := start + len("テキスト")

	got := ExtractContext(text, start, end, 2)
	assert.Equal(t, "...語のテキストです", got)
}

func TestIndexFold(t *testing.T) {
	s := "The Whale and the whale"

	assert.Equal(t, 4, IndexFold(s, "whale", 0))
	assert.Equal(t, 18, IndexFold(s, "whale", 5))
	assert.Equal(t, -1, IndexFold(s, "whale", 19))
	assert.Equal(t, -1, IndexFold(s, "orca", 0))
	assert.Equal(t, -1, IndexFold(s, "", 0))
	assert.Equal(t, -1, IndexFold(s, "whale", len(s)+1))
}

func TestIndexFoldMultibyte(t *testing.T) {
	s := "prefix ÅNGSTRÖM suffix"
	assert.Equal(t, 7, IndexFold(s, "ångström", 0))
}
