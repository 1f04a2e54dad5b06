package service

import (
	"context"
	"testing"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncNoteResolvedAndPendingLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whales := createNote(t, env, "Whales", "Marine mammals")
	oceans, result, err := env.noteSvc.Create(ctx, &dto.NoteCreateRequest{
		Title:   "Oceans",
		Content: "Studying [[Whales]] and [[Ghost]] stories",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.LinksAdded)
	assert.Equal(t, 0, result.LinksRemoved)
	assert.Equal(t, 0, result.LinksKept)
	assert.Equal(t, 1, result.EdgesCreated)

	pending, err := env.linkRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	exists, err := env.edgeRepo.ExistsBetween(ctx, whales.ID, oceans.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.GreaterOrEqual(t, env.events.countOf(dto.WSActionGraphSynced), 1)
}

func TestSyncNoteIdempotentResync(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createNote(t, env, "Whales", "")
	oceans := createNote(t, env, "Oceans", "Studying [[Whales]] and [[Ghost]]")

	note, err := env.noteRepo.GetByID(ctx, oceans.ID)
	require.NoError(t, err)

	// 内容未变，重新同步不产生任何增删
	result, err := env.syncSvc.SyncNote(ctx, note)
	require.NoError(t, err)
	assert.Equal(t, 0, result.LinksAdded)
	assert.Equal(t, 0, result.LinksRemoved)
	assert.Equal(t, 2, result.LinksKept)
	assert.Equal(t, 0, result.EdgesCreated)

	links, err := env.linkRepo.ListBySource(ctx, oceans.ID)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func TestSyncNoteRemovesStaleLinksKeepsEdges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createNote(t, env, "Whales", "")
	oceans := createNote(t, env, "Oceans", "Studying [[Whales]] and [[Ghost]]")

	_, result, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      oceans.ID,
		Content: strPtr("Studying [[Whales]] only now"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.LinksAdded)
	assert.Equal(t, 1, result.LinksRemoved)
	assert.Equal(t, 1, result.LinksKept)

	// 把最后一个引用也删掉：链接消失，连接保留
	_, result, err = env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      oceans.ID,
		Content: strPtr("No references anymore"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.LinksRemoved)
	assert.Equal(t, 0, result.LinksKept)

	links, err := env.linkRepo.ListBySource(ctx, oceans.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	edges, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), edges)
}

func TestSyncNoteOffsetRefreshCountsAsKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createNote(t, env, "Whales", "")
	offsets := createNote(t, env, "Offsets", "[[Whales]] ahead")

	_, result, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      offsets.ID,
		Content: strPtr("prefix [[Whales]] ahead"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.LinksAdded)
	assert.Equal(t, 0, result.LinksRemoved)
	assert.Equal(t, 1, result.LinksKept)

	links, err := env.linkRepo.ListBySource(ctx, offsets.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, 7, links[0].TextOffset)
}

func TestSyncNoteDeduplicatesRepeatedTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createNote(t, env, "Whales", "")
	reef := createNote(t, env, "Reef", "[[Whales]] and [[whales]] again")

	links, err := env.linkRepo.ListBySource(ctx, reef.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestSyncNoteCaseInsensitiveResolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whales := createNote(t, env, "Whales", "")
	reef := createNote(t, env, "Reef", "about [[whales]]")

	links, err := env.linkRepo.ListResolvedBySource(ctx, reef.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, whales.ID, links[0].TargetNoteID)
	assert.Equal(t, "whales", links[0].TargetTitle)
}

func TestSyncNoteSkipsEmbedsAndKeepsAliases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	whales := createNote(t, env, "Whales", "")
	reef := createNote(t, env, "Reef", "[[Whales|the giants]] and ![[diagram.png]]")

	links, err := env.linkRepo.ListBySource(ctx, reef.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, whales.ID, links[0].TargetNoteID)
}

func TestSyncNoteSelfLinkCreatesNoEdge(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	loop := createNote(t, env, "Loop", "see [[Loop]]")

	links, err := env.linkRepo.ListBySource(ctx, loop.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, loop.ID, links[0].TargetNoteID)

	edges, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), edges)
}

func TestSyncNoteMirrorSkippedWhenPairExists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alpha := createNote(t, env, "Alpha", "")
	beta := createNote(t, env, "Beta", "")

	// 手动连线占住无序对，方向与镜像相反
	_, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID: beta.ID,
		TargetNoteID: alpha.ID,
	})
	require.NoError(t, err)

	_, result, err := env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:      alpha.ID,
		Content: strPtr("builds on [[Beta]]"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.LinksAdded)
	assert.Equal(t, 0, result.EdgesCreated)

	edges, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), edges)
}

func TestResolvePendingOnCreateAndRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	oceans := createNote(t, env, "Oceans", "Planning the [[Iceland Trip]]")

	pending, err := env.linkRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	// 创建同名笔记后待解析链接落位并补出连接
	trip := createNote(t, env, "Iceland Trip", "Puffins and glaciers")

	pending, err = env.linkRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)

	resolved, err := env.linkRepo.ListResolvedByTarget(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, oceans.ID, resolved[0].SourceNoteID)

	exists, err := env.edgeRepo.ExistsBetween(ctx, oceans.ID, trip.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.GreaterOrEqual(t, env.events.countOf(dto.WSActionEdgeCreated), 1)

	// 改名不影响按 ID 存储的已解析链接
	_, _, err = env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:    trip.ID,
		Title: strPtr("Saga Notes"),
	})
	require.NoError(t, err)

	resolved, err = env.linkRepo.ListResolvedByTarget(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestResolvePendingRenameCapturesNewTitle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createNote(t, env, "Oceans", "See [[Field Notes]]")
	stub := createNote(t, env, "Scratch", "")

	pending, err := env.linkRepo.CountPending(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), pending)

	// 既有笔记改名命中待解析标题
	_, _, err = env.noteSvc.Update(ctx, &dto.NoteUpdateRequest{
		ID:    stub.ID,
		Title: strPtr("Field Notes"),
	})
	require.NoError(t, err)

	pending, err = env.linkRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)

	resolved, err := env.linkRepo.ListResolvedByTarget(ctx, stub.ID)
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestSyncNoteUnresolvedTargetNeverBlocksSave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note := createNote(t, env, "Drafts", "mentions [[No Such Note]]")

	links, err := env.linkRepo.ListBySource(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Zero(t, links[0].TargetNoteID)
	assert.Equal(t, "No Such Note", links[0].TargetTitle)

	got, err := env.noteRepo.GetByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "mentions [[No Such Note]]", got.Content)
}
