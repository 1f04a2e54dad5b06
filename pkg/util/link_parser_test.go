package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWikiLinks(t *testing.T) {
	content := "Start [[Alpha]] mid [[ Beta Note |the beta]] and ![[image.png]] end [[Alpha]]"

	links := ParseWikiLinks(content)
	require.Len(t, links, 4)

	assert.Equal(t, "Alpha", links[0].Title)
	assert.Empty(t, links[0].Alias)
	assert.False(t, links[0].IsEmbed)
	assert.Equal(t, "[[Alpha]]", links[0].Raw)
	assert.Equal(t, 6, links[0].Start)
	assert.Equal(t, 15, links[0].End)

	assert.Equal(t, "Beta Note", links[1].Title)
	assert.Equal(t, "the beta", links[1].Alias)

	assert.Equal(t, "image.png", links[2].Title)
	assert.True(t, links[2].IsEmbed)

	assert.Equal(t, "Alpha", links[3].Title)
}

func TestParseWikiLinksEdgeCases(t *testing.T) {
	assert.Nil(t, ParseWikiLinks(""))
	assert.Nil(t, ParseWikiLinks("no links here"))
	assert.Empty(t, ParseWikiLinks("[[   ]]"))
	assert.Nil(t, ParseWikiLinks("[single brackets] and [not|a link]"))

	links := ParseWikiLinks("[[newline\ntitle]] is still one token? no: [[ok]]")
	// 标题段不允许闭括号与竖线，允许换行
	require.NotEmpty(t, links)
	assert.Equal(t, "ok", links[len(links)-1].Title)
}
