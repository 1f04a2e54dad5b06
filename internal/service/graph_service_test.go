package service

import (
	"context"
	"testing"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/stretchr/testify/require"
)

func TestGraphSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "links to [[Beta]]", "project")
	beta := createNote(t, env, "Beta", "")

	_, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{
		SourceNoteID: alpha.ID,
		TargetNoteID: beta.ID,
	})
	require.NoError(t, err)

	graph, err := env.graphSvc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)

	byID := make(map[int64]*dto.GraphNodeDTO, len(graph.Nodes))
	for _, n := range graph.Nodes {
		byID[n.ID] = n
	}
	require.Equal(t, "Alpha", byID[alpha.ID].Title)
	require.Equal(t, []string{"project"}, byID[alpha.ID].Tags)
	require.Equal(t, alpha.ID, graph.Edges[0].SourceNoteID)
	require.Equal(t, beta.ID, graph.Edges[0].TargetNoteID)
}

func TestGraphSnapshotSkipsEdgesWithDeletedEndpoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "")
	beta := createNote(t, env, "Beta", "")
	gamma := createNote(t, env, "Gamma", "")

	_, err := env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{SourceNoteID: alpha.ID, TargetNoteID: beta.ID})
	require.NoError(t, err)
	_, err = env.edgeSvc.Create(ctx, &dto.EdgeCreateRequest{SourceNoteID: alpha.ID, TargetNoteID: gamma.ID})
	require.NoError(t, err)

	require.NoError(t, env.noteSvc.Delete(ctx, &dto.NoteDeleteRequest{ID: beta.ID}))

	graph, err := env.graphSvc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)
	require.Equal(t, gamma.ID, graph.Edges[0].TargetNoteID)
}

func TestGraphSnapshotEmpty(t *testing.T) {
	env := newTestEnv(t)

	graph, err := env.graphSvc.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, graph.Nodes)
	require.NotNil(t, graph.Edges)
	require.Empty(t, graph.Nodes)
	require.Empty(t, graph.Edges)
}
