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

func TestRankOrdersBySharedTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := createNote(t, env, "Base", "", "marine", "research")
	createNote(t, env, "Both", "", "marine", "research")
	createNote(t, env, "One", "", "marine")
	createNote(t, env, "None", "")

	candidates, err := env.rankSvc.RankCandidates(ctx, base.ID, 0)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	// 全部都是刚创建的，近期加分相同，顺序由共享标签决定
	assert.Equal(t, "Both", candidates[0].Note.Title)
	assert.Equal(t, 2, candidates[0].SharedTagCount)
	assert.Equal(t, recencyWeight+sharedTagWeight*2, candidates[0].Score)

	assert.Equal(t, "One", candidates[1].Note.Title)
	assert.Equal(t, recencyWeight+sharedTagWeight, candidates[1].Score)

	assert.Equal(t, "None", candidates[2].Note.Title)
	assert.Equal(t, recencyWeight, candidates[2].Score)
}

func TestRankExcludesConnectedNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	createNote(t, env, "Linked", "")
	manual := createNote(t, env, "Manual", "")
	inbound := createNote(t, env, "Inbound", "")
	free := createNote(t, env, "Free", "")
	base := createNote(t, env, "Base", "see [[Linked]]")

	_, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID: base.ID,
		TargetNoteID: manual.ID,
	})
	require.NoError(t, err)
	_, err = env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID: inbound.ID,
		TargetNoteID: base.ID,
	})
	require.NoError(t, err)

	candidates, err := env.rankSvc.RankCandidates(ctx, base.ID, 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, free.ID, candidates[0].Note.ID)
}

func TestRankTieBreaksByRecency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := createNote(t, env, "Base", "")
	createNote(t, env, "Older", "")
	time.Sleep(10 * time.Millisecond)
	createNote(t, env, "Newer", "")

	candidates, err := env.rankSvc.RankCandidates(ctx, base.ID, 0)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, candidates[0].Score, candidates[1].Score)
	assert.Equal(t, "Newer", candidates[0].Note.Title)
}

func TestRankRespectsLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := createNote(t, env, "Base", "", "marine")
	createNote(t, env, "Best", "", "marine")
	createNote(t, env, "Meh1", "")
	createNote(t, env, "Meh2", "")

	candidates, err := env.rankSvc.RankCandidates(ctx, base.ID, 2)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Best", candidates[0].Note.Title)
}

func TestRankNoteNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.rankSvc.RankCandidates(context.Background(), 404, 0)
	assertCode(t, err, code.ErrorNoteNotFound)
}
