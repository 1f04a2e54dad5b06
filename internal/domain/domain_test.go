package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRelationshipType(t *testing.T) {
	cases := []struct {
		in   string
		want RelationshipType
	}{
		{"related-to", RelationRelatedTo},
		{"SUPPORTS", RelationSupports},
		{"  Depends On  ", RelationDependsOn},
		{"part_of", RelationPartOf},
		{"contradicts", RelationContradicts},
		{"references", RelationReferences},
		{"relates-to", RelationRelatedTo},
		{"requires", RelationDependsOn},
		{"belongs-to", RelationPartOf},
		{"evidence", RelationSupports},
		{"opposes", RelationContradicts},
		{"cites", RelationReferences},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeRelationshipType(c.in, DefaultRelationshipType), "input %q", c.in)
	}
}

func TestNormalizeRelationshipTypeFallback(t *testing.T) {
	assert.Equal(t, RelationSupports, NormalizeRelationshipType("made-up", RelationSupports))
	assert.Equal(t, RelationSupports, NormalizeRelationshipType("", RelationSupports))
	// fallback 本身非法时回落到默认类型
	assert.Equal(t, DefaultRelationshipType, NormalizeRelationshipType("made-up", RelationshipType("junk")))
}

func TestAllRelationshipTypesOrder(t *testing.T) {
	metas := AllRelationshipTypes()
	assert.Len(t, metas, 6)
	assert.Equal(t, RelationRelatedTo, metas[0].Type)
	assert.Equal(t, RelationReferences, metas[5].Type)
	for _, m := range metas {
		assert.NotEmpty(t, m.Label)
		assert.NotEmpty(t, m.Color)
		assert.NotEmpty(t, m.Description)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 10))
	assert.Equal(t, "abcde...", Excerpt("abcdefgh", 5))
	assert.Equal(t, "日本語...", Excerpt("日本語のテキスト", 3))
}

func TestTailExcerpt(t *testing.T) {
	assert.Equal(t, "short", TailExcerpt("short", 10))
	assert.Equal(t, "...defgh", TailExcerpt("abcdefgh", 5))
	assert.Equal(t, "...キスト", TailExcerpt("日本語のテキスト", 3))
}

func TestNoteHasTag(t *testing.T) {
	n := &Note{Tags: []string{"Marine", "research"}}
	assert.True(t, n.HasTag("marine"))
	assert.True(t, n.HasTag("RESEARCH"))
	assert.False(t, n.HasTag("geology"))
	assert.False(t, (&Note{}).HasTag("marine"))
}

func TestNoteSharedTagCount(t *testing.T) {
	a := &Note{Tags: []string{"Marine", "research", "travel"}}
	b := &Note{Tags: []string{"marine", "RESEARCH", "cooking"}}

	assert.Equal(t, 2, a.SharedTagCount(b))
	assert.Equal(t, 2, b.SharedTagCount(a))
	assert.Equal(t, 0, a.SharedTagCount(&Note{}))
	assert.Equal(t, 0, a.SharedTagCount(nil))
}

func TestNoteUpdatedWithin(t *testing.T) {
	fresh := &Note{UpdatedAt: time.Now().Add(-time.Hour)}
	stale := &Note{UpdatedAt: time.Now().Add(-10 * 24 * time.Hour)}

	assert.True(t, fresh.UpdatedWithin(7*24*time.Hour))
	assert.False(t, stale.UpdatedWithin(7*24*time.Hour))
}

func TestBackupConfigIsDue(t *testing.T) {
	now := time.Now()

	due := &BackupConfig{IsEnabled: true, NextRunAt: now.Add(-time.Minute)}
	assert.True(t, due.IsDue(now))

	exact := &BackupConfig{IsEnabled: true, NextRunAt: now}
	assert.True(t, exact.IsDue(now))

	future := &BackupConfig{IsEnabled: true, NextRunAt: now.Add(time.Hour)}
	assert.False(t, future.IsDue(now))

	neverRan := &BackupConfig{IsEnabled: true}
	assert.True(t, neverRan.IsDue(now))

	disabled := &BackupConfig{IsEnabled: false, NextRunAt: now.Add(-time.Minute)}
	assert.False(t, disabled.IsDue(now))
}
