package service

import (
	"context"
	"testing"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/stretchr/testify/require"
)

func TestEdgeCreateManual(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "")
	beta := createNote(t, env, "Beta", "")

	edge, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID:     alpha.ID,
		TargetNoteID:     beta.ID,
		RelationshipType: "depends-on",
		Label:            "beta must land first",
	})
	require.NoError(t, err)
	require.Equal(t, alpha.ID, edge.SourceNoteID)
	require.Equal(t, beta.ID, edge.TargetNoteID)
	require.Equal(t, "depends-on", edge.RelationshipType)
	require.Equal(t, "beta must land first", edge.Label)
	require.True(t, edge.IsManual)

	require.GreaterOrEqual(t, env.events.countOf(dto.WSActionEdgeCreated), 1)
}

func TestEdgeCreateSelfEdge(t *testing.T) {
	env := newTestEnv(t)
	note := createNote(t, env, "Loop", "")

	_, err := env.edgeSvc.Create(context.Background(), &dto.EdgeCreateRequest{
		SourceNoteID: note.ID,
		TargetNoteID: note.ID,
	})
	assertCode(t, err, code.ErrorInvalidParams)
}

func TestEdgeCreateMissingNote(t *testing.T) {
	env := newTestEnv(t)
	note := createNote(t, env, "Alpha", "")

	_, err := env.edgeSvc.Create(context.Background(), &dto.EdgeCreateRequest{
		SourceNoteID: note.ID,
		TargetNoteID: 4242,
	})
	assertCode(t, err, code.ErrorNoteNotFound)
}

func TestEdgeCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "")
	beta := createNote(t, env, "Beta", "")

	edge, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID: alpha.ID,
		TargetNoteID: beta.ID,
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.RelationRelatedTo), edge.RelationshipType)
	require.Equal(t, domain.RelationRelatedTo.Meta().Label, edge.Label)
}

func TestEdgeCreateAllowsParallelManualPair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "")
	beta := createNote(t, env, "Beta", "")

	_, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID: alpha.ID,
		TargetNoteID: beta.ID,
	})
	require.NoError(t, err)
	_, err = env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID:     alpha.ID,
		TargetNoteID:     beta.ID,
		RelationshipType: "supports",
	})
	require.NoError(t, err)

	total, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestEdgeUpdateNormalizesType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "")
	beta := createNote(t, env, "Beta", "")

	edge, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID:     alpha.ID,
		TargetNoteID:     beta.ID,
		RelationshipType: "supports",
	})
	require.NoError(t, err)

	updated, err := env.edgeSvc.Update(ctx, &dto.EdgeUpdateRequest{
		ID:               edge.ID,
		RelationshipType: "CONTRADICTS",
		Label:            "they disagree",
	})
	require.NoError(t, err)
	require.Equal(t, "contradicts", updated.RelationshipType)
	require.Equal(t, "they disagree", updated.Label)

	// 未识别的类型保持当前值不变
	updated, err = env.edgeSvc.Update(ctx, &dto.EdgeUpdateRequest{
		ID:               edge.ID,
		RelationshipType: "absolutely-bogus",
	})
	require.NoError(t, err)
	require.Equal(t, "contradicts", updated.RelationshipType)
	require.Equal(t, "they disagree", updated.Label)

	require.GreaterOrEqual(t, env.events.countOf(dto.WSActionEdgeUpdated), 2)
}

func TestEdgeUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.edgeSvc.Update(context.Background(), &dto.EdgeUpdateRequest{
		ID:               4242,
		RelationshipType: "supports",
	})
	assertCode(t, err, code.ErrorEdgeNotFound)
}

func TestEdgeDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "")
	beta := createNote(t, env, "Beta", "")

	edge, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID: alpha.ID,
		TargetNoteID: beta.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.edgeSvc.Delete(ctx, &dto.EdgeDeleteRequest{ID: edge.ID}))

	err = env.edgeSvc.Delete(ctx, &dto.EdgeDeleteRequest{ID: edge.ID})
	assertCode(t, err, code.ErrorEdgeNotFound)

	require.GreaterOrEqual(t, env.events.countOf(dto.WSActionEdgeDeleted), 1)
}

func TestEdgeListRelationshipTypes(t *testing.T) {
	env := newTestEnv(t)

	types := env.edgeSvc.ListRelationshipTypes()
	require.Len(t, types, 6)
	require.Equal(t, "related-to", types[0].Type)
	require.Equal(t, "references", types[5].Type)
	for _, rt := range types {
		require.NotEmpty(t, rt.Label)
		require.NotEmpty(t, rt.Color)
	}
}
