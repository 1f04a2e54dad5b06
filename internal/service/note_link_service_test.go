package service

import (
	"context"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBacklinksWithFreshContext(t *testing.T) {
	env := newTestEnv(t)
	env.config.App.ContextRadius = 12
	ctx := context.Background()

	whale := createNote(t, env, "Whale", "Humpbacks")
	createNote(t, env, "Oceans", "I've been studying [[Whale]] behavior around Iceland")

	items, err := env.linkSvc.GetBacklinks(ctx, whale.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Oceans", items[0].SourceTitle)
	assert.Equal(t, "Whale", items[0].LinkText)
	assert.Equal(t, "... studying [[Whale]] behavior ...", items[0].Context)
}

func TestBacklinksOrderedBySourceUpdatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hub := createNote(t, env, "Hub", "")
	first := createNote(t, env, "First", "see [[Hub]]")
	time.Sleep(10 * time.Millisecond)
	createNote(t, env, "Second", "also [[Hub]]")
	time.Sleep(10 * time.Millisecond)

	// 更新 First 让它重新成为最近编辑的来源
	_, _, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      first.ID,
		Content: strPtr("see [[Hub]] again"),
	})
	require.NoError(t, err)

	items, err := env.linkSvc.GetBacklinks(ctx, hub.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "First", items[0].SourceTitle)
	assert.Equal(t, "Second", items[1].SourceTitle)
}

func TestBacklinksSkipDeletedSources(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	hub := createNote(t, env, "Hub", "")
	createNote(t, env, "Alive", "see [[Hub]]")
	gone := createNote(t, env, "Gone", "see [[Hub]]")

	// 绕过服务直接软删除，留下链接行模拟历史残留
	require.NoError(t, env.noteRepo.SoftDelete(ctx, gone.ID))

	items, err := env.linkSvc.GetBacklinks(ctx, hub.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alive", items[0].SourceTitle)
}

func TestBacklinksTargetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.linkSvc.GetBacklinks(context.Background(), 404)
	assertCode(t, err, code.ErrorNoteNotFound)
}

func TestOutlinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whale := createNote(t, env, "Whale", "")
	oceans := createNote(t, env, "Oceans", "studying [[Whale]] songs and [[Mystery]]")

	items, err := env.linkSvc.GetOutlinks(ctx, oceans.ID)
	require.NoError(t, err)
	// 未解析的链接不出现在正向链接里
	require.Len(t, items, 1)
	assert.Equal(t, whale.ID, items[0].TargetNoteID)
	assert.Equal(t, "Whale", items[0].TargetTitle)
	assert.Contains(t, items[0].Context, "[[Whale]]")
}

func TestUnlinkedMentionsPerOccurrence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whales := createNote(t, env, "Whales", "Marine mammals")
	createNote(t, env, "Field Log", "We observed whales near the coast")

	items, err := env.linkSvc.FindUnlinkedMentions(ctx, whales.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Field Log", items[0].SourceTitle)
	assert.Equal(t, "whales", items[0].MatchedText)
	assert.Equal(t, 12, items[0].StartOffset)
	assert.Equal(t, "We observed whales near the coast", items[0].Context)
}

func TestUnlinkedMentionsExcludeLinkingSources(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whales := createNote(t, env, "Whales", "")
	log := createNote(t, env, "Field Log", "We observed whales near the coast")

	items, err := env.linkSvc.FindUnlinkedMentions(ctx, whales.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// 把提及升级成显式链接后，该来源整体从提及结果消失
	_, _, err = env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      log.ID,
		Content: strPtr("We observed [[Whales]] near the coast"),
	})
	require.NoError(t, err)

	items, err = env.linkSvc.FindUnlinkedMentions(ctx, whales.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUnlinkedMentionsExcludeSelfAndFoldCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whales := createNote(t, env, "Whales", "Whales singing to whales")
	createNote(t, env, "Trip", "Whales here, WHALES there")

	items, err := env.linkSvc.FindUnlinkedMentions(ctx, whales.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Whales", items[0].MatchedText)
	assert.Equal(t, "WHALES", items[1].MatchedText)
}

func TestUnlinkedMentionsScanPlainProjection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whales := createNote(t, env, "Whales", "")
	createNote(t, env, "Notes", "## About whales\nSome **whales** notes")

	items, err := env.linkSvc.FindUnlinkedMentions(ctx, whales.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "whales", item.MatchedText)
	}
}
