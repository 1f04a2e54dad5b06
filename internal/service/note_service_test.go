package service

import (
	"context"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/stretchr/testify/require"
)

func TestNoteCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, syncResult, err := env.noteSvc.Create(ctx, &dto.NoteCreateRequest{
		Title:     "  Iceland Trip  ",
		Content:   "Planning the volcano hike",
		Tags:      []string{" travel ", "Travel", "nature"},
		PositionX: 120.5,
		PositionY: -42,
	})
	require.NoError(t, err)
	require.NotNil(t, syncResult)
	require.Equal(t, "Iceland Trip", created.Title)
	require.Equal(t, []string{"travel", "nature"}, created.Tags)

	got, err := env.noteSvc.Get(ctx, &dto.NoteGetRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Iceland Trip", got.Title)
	require.Equal(t, "Planning the volcano hike", got.Content)
	require.Equal(t, 120.5, got.PositionX)
	require.Equal(t, -42.0, got.PositionY)

	require.GreaterOrEqual(t, env.events.countOf(dto.WSActionNoteUpdated), 1)
}

func TestNoteCreateEmptyTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.noteSvc.Create(ctx, &dto.NoteCreateRequest{Title: ""})
	assertCode(t, err, code.ErrorNoteTitleEmpty)

	_, _, err = env.noteSvc.Create(ctx, &dto.NoteCreateRequest{Title: "   "})
	assertCode(t, err, code.ErrorNoteTitleEmpty)
}

func TestNoteCreateDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	createNote(t, env, "Oceans", "")

	_, _, err := env.noteSvc.Create(ctx, &dto.NoteCreateRequest{Title: "oceans"})
	assertCode(t, err, code.ErrorNoteTitleExist)
}

func TestNoteUpdatePositionOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Canvas Note", "some stable text")

	updated, syncResult, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:        note.ID,
		PositionX: f64Ptr(300),
		PositionY: f64Ptr(150),
	})
	require.NoError(t, err)
	require.Nil(t, syncResult)
	require.Equal(t, 300.0, updated.PositionX)
	require.Equal(t, 150.0, updated.PositionY)

	got, err := env.noteSvc.Get(ctx, &dto.NoteGetRequest{ID: note.ID})
	require.NoError(t, err)
	require.Equal(t, 300.0, got.PositionX)
	require.Equal(t, "some stable text", got.Content)

	// 拖动不产生新的历史版本
	_, total, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestNoteUpdateContentRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Draft", "first revision")

	_, syncResult, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      note.ID,
		Content: strPtr("second revision"),
	})
	require.NoError(t, err)
	require.NotNil(t, syncResult)

	items, total, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, int64(2), items[0].Version)
	require.Empty(t, items[0].Content)
}

func TestNoteUpdateSameContentSkipsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Draft", "same text")

	_, syncResult, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      note.ID,
		Content: strPtr("same text"),
		Tags:    tagsPtr([]string{"kept"}),
	})
	require.NoError(t, err)
	require.Nil(t, syncResult)

	_, total, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	got, err := env.noteSvc.Get(ctx, &dto.NoteGetRequest{ID: note.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"kept"}, got.Tags)
}

func TestNoteUpdateRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Old Name", "")
	createNote(t, env, "Taken", "")

	updated, _, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:    note.ID,
		Title: strPtr("New Name"),
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Title)

	_, _, err = env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:    note.ID,
		Title: strPtr("taken"),
	})
	assertCode(t, err, code.ErrorNoteTitleExist)
}

func TestNoteUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.noteSvc.Update(context.Background(), &dto.NoteUpdateRequest{
		ID:    4242,
		Title: strPtr("Ghost"),
	})
	assertCode(t, err, code.ErrorNoteNotFound)
}

func TestNoteDeleteCleansLinksKeepsEdges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	target := createNote(t, env, "Target", "")
	source := createNote(t, env, "Source", "mentions [[Target]] inline")

	_, err := env.edgeRepo.Create(ctx, &domain.Edge{
		SourceNoteID:     source.ID,
		TargetNoteID:     target.ID,
		RelationshipType: domain.RelationRelatedTo,
		IsManual:         true,
	})
	require.NoError(t, err)

	require.NoError(t, env.noteSvc.Delete(ctx, &dto.NoteDeleteRequest{ID: source.ID}))

	_, err = env.noteSvc.Get(ctx, &dto.NoteGetRequest{ID: source.ID})
	assertCode(t, err, code.ErrorNoteNotFound)

	links, err := env.linkRepo.ListBySource(ctx, source.ID)
	require.NoError(t, err)
	require.Empty(t, links)

	// 连接保留，读路径负责跳过已删除端点
	total, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	require.GreaterOrEqual(t, env.events.countOf(dto.WSActionNoteDeleted), 1)
}

func TestNoteDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)
	err := env.noteSvc.Delete(context.Background(), &dto.NoteDeleteRequest{ID: 4242})
	assertCode(t, err, code.ErrorNoteNotFound)
}

func TestNoteListKeywordAndExcerpt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	createNote(t, env, "Alpha Whale", "title match here")
	createNote(t, env, "Beta", "notes about a deep whale dive")
	createNote(t, env, "Gamma", "# Heading\nSome **bold** text without the keyword")

	items, total, err := env.noteSvc.List(ctx, &dto.NoteListRequest{Keyword: "whale", Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	titles := make(map[string]string, len(items))
	for _, it := range items {
		titles[it.Title] = it.Excerpt
	}
	require.Contains(t, titles, "Alpha Whale")
	require.Contains(t, titles, "Beta")
	require.Equal(t, "notes about a deep whale dive", titles["Beta"])

	// 摘要走纯文本投影，不带 Markdown 标记
	items, _, err = env.noteSvc.List(ctx, &dto.NoteListRequest{Keyword: "Gamma", Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotContains(t, items[0].Excerpt, "**")
	require.NotContains(t, items[0].Excerpt, "#")
	require.Contains(t, items[0].Excerpt, "bold text")
}

func TestNoteCleanup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 未配置或配置非法都静默跳过
	env.config.App.SoftDeleteRetentionTime = ""
	count, err := env.noteSvc.Cleanup(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	env.config.App.SoftDeleteRetentionTime = "xyz"
	count, err = env.noteSvc.Cleanup(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	note := createNote(t, env, "Ephemeral", "short lived")
	require.NoError(t, env.noteSvc.Delete(ctx, &dto.NoteDeleteRequest{ID: note.ID}))

	_, histTotal, err := env.historyRepo.ListByNoteID(ctx, note.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), histTotal)

	env.config.App.SoftDeleteRetentionTime = "1h"
	count, err = env.noteSvc.Cleanup(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	time.Sleep(20 * time.Millisecond)
	env.config.App.SoftDeleteRetentionTime = "1ms"
	count, err = env.noteSvc.Cleanup(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// 物理清除的笔记不留下历史版本
	_, histTotal, err = env.historyRepo.ListByNoteID(ctx, note.ID, 1, 10)
	require.NoError(t, err)
	require.Zero(t, histTotal)
}
