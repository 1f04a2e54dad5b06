package service

import (
	"context"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/stretchr/testify/require"
)

// reviseNote 为同一笔记连续保存多个内容版本
func reviseNote(t *testing.T, env *testEnv, noteID int64, contents ...string) {
	t.Helper()
	for _, c := range contents {
		_, _, err := env.noteSvc.Update(context.Background(), &dto.NoteUpdateRequest{
			ID:      noteID,
			Content: strPtr(c),
		})
		require.NoError(t, err)
	}
}

func TestHistoryVersionsIncrement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Journal", "first draft")
	reviseNote(t, env, note.ID, "second draft", "third draft")

	items, total, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 3)
	require.Equal(t, int64(3), items[0].Version)
	require.Equal(t, int64(2), items[1].Version)
	require.Equal(t, int64(1), items[2].Version)
	for _, it := range items {
		require.Equal(t, note.ID, it.NoteID)
		require.Empty(t, it.Content)
	}
}

func TestHistoryGetIncludesContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Journal", "first draft")
	reviseNote(t, env, note.ID, "second draft")

	items, _, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)

	got, err := env.historySvc.Get(ctx, &dto.NoteHistoryGetRequest{ID: items[1].ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Version)
	require.Equal(t, "first draft", got.Content)
}

func TestHistoryGetNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.historySvc.Get(context.Background(), &dto.NoteHistoryGetRequest{ID: 4242})
	assertCode(t, err, code.ErrorHistoryNotFound)
}

func TestHistoryDiffBetweenVersions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Journal", "# Journal\nshared middle line\nold ending here")
	reviseNote(t, env, note.ID, "# Journal\nshared middle line\nnew finish text")

	items, _, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)

	d, err := env.historySvc.Diff(ctx, &dto.HistoryDiffRequest{
		NoteID: note.ID,
		FromID: items[1].ID,
		ToID:   items[0].ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), d.FromVersion)
	require.Equal(t, int64(2), d.ToVersion)
	require.Contains(t, d.Diff, "- old")
	require.Contains(t, d.Diff, "+ new")
	require.Contains(t, d.Diff, "  shared middle line")
}

func TestHistoryDiffAgainstCurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Journal", "yesterday its rained")
	reviseNote(t, env, note.ID, "today the sun is out")

	items, _, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)

	d, err := env.historySvc.Diff(ctx, &dto.HistoryDiffRequest{
		NoteID: note.ID,
		FromID: items[1].ID,
		ToID:   0,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), d.FromVersion)
	require.Zero(t, d.ToVersion)
	require.NotEmpty(t, d.Diff)
}

func TestHistoryDiffWrongNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mine := createNote(t, env, "Mine", "my content")
	other := createNote(t, env, "Other", "other content")

	items, _, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: other.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = env.historySvc.Diff(ctx, &dto.HistoryDiffRequest{
		NoteID: mine.ID,
		FromID: items[0].ID,
	})
	assertCode(t, err, code.ErrorHistoryNotFound)
}

func TestHistoryPrune(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Journal", "first draft")
	reviseNote(t, env, note.ID, "second draft", "third draft")

	// 策略未配置时不做任何事
	require.NoError(t, env.historySvc.Prune(ctx))
	_, total, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)

	time.Sleep(20 * time.Millisecond)
	env.config.App.HistoryKeepVersions = 1
	env.config.App.HistoryRetentionTime = "1ms"
	require.NoError(t, env.historySvc.Prune(ctx))

	items, total, err := env.historySvc.List(ctx, &dto.NoteHistoryListRequest{NoteID: note.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, int64(3), items[0].Version)
}
