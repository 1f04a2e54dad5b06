package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/internal/dto"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/stretchr/testify/require"
)

// newAutoLinkService 用脚本模型搭起建议与落盘两层
func newAutoLinkService(env *testEnv, model *scriptedModel) AutoLinkService {
	suggestSvc := newSuggestService(env, model)
	return NewAutoLinkService(env.edgeRepo, suggestSvc, env.rankSvc, env.events)
}

func TestAutoLinkCreatesEdges(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")
	rocks := createNote(t, env, "Rocks", "", "geology")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": %d, "relationshipType": "related-to", "reason": "shared habitat", "confidence": 0.9}]`,
		whales.ID,
	)}}
	svc := newAutoLinkService(env, model)

	result, suggestions, err := svc.AutoLink(ctx, oceans.ID)
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)
	require.Equal(t, 0, result.Skipped)
	require.Len(t, suggestions, 1)

	exists, err := env.edgeRepo.ExistsBetween(ctx, oceans.ID, whales.ID)
	require.NoError(t, err)
	require.True(t, exists)

	untouched, err := env.edgeRepo.ExistsBetween(ctx, oceans.ID, rocks.ID)
	require.NoError(t, err)
	require.False(t, untouched)

	edges, err := env.edgeRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, "shared habitat", edges[0].Label)
	require.False(t, edges[0].IsManual)

	require.GreaterOrEqual(t, env.events.countOf(dto.WSActionEdgeCreated), 1)
}

func TestAutoLinkSkipsExistingPair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": %d, "relationshipType": "related-to", "confidence": 0.9}]`,
		whales.ID,
	)}}
	svc := newAutoLinkService(env, model)

	result, _, err := svc.AutoLink(ctx, oceans.ID)
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	result, _, err = svc.AutoLink(ctx, oceans.ID)
	require.NoError(t, err)
	require.Equal(t, 0, result.Created)
	require.Equal(t, 1, result.Skipped)

	total, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestAutoLinkSkipsManualReversePair(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")

	_, err := env.edgeRepo.Create(ctx, &domain.Edge{
		SourceNoteID:     whales.ID,
		TargetNoteID:     oceans.ID,
		RelationshipType: domain.RelationRelatedTo,
		Label:            "hand drawn",
		IsManual:         true,
	})
	require.NoError(t, err)

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": %d, "relationshipType": "related-to", "confidence": 0.9}]`,
		whales.ID,
	)}}
	svc := newAutoLinkService(env, model)

	result, _, err := svc.AutoLink(ctx, oceans.ID)
	require.NoError(t, err)
	require.Equal(t, 0, result.Created)
	require.Equal(t, 1, result.Skipped)

	total, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestAutoLinkNoCandidatesFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Lonely", "Nothing to link against")

	svc := newAutoLinkService(env, &scriptedModel{})

	_, _, err := svc.AutoLink(ctx, note.ID)
	assertCode(t, err, code.ErrorAutoLinkFailed)
	require.Contains(t, err.(*code.Code).Details(), "no link candidates")
}

func TestAutoLinkEmptySuggestionsSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	createNote(t, env, "Whales", "", "marine")

	model := &scriptedModel{replies: []string{"[]"}}
	svc := newAutoLinkService(env, model)

	result, suggestions, err := svc.AutoLink(ctx, oceans.ID)
	require.NoError(t, err)
	require.Equal(t, 0, result.Created)
	require.Equal(t, 0, result.Skipped)
	require.Empty(t, suggestions)
}

func TestAutoLinkLabelFallsBackToTypeLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": %d, "relationshipType": "part-of", "confidence": 0.9}]`,
		whales.ID,
	)}}
	svc := newAutoLinkService(env, model)

	result, _, err := svc.AutoLink(ctx, oceans.ID)
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	edges, err := env.edgeRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, domain.RelationPartOf, edges[0].RelationshipType)
	require.Equal(t, domain.RelationPartOf.Meta().Label, edges[0].Label)
}

func TestAutoLinkCanvasPreviewThenCommit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "", "project")
	beta := createNote(t, env, "Beta", "", "project")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"sourceId": %d, "targetId": %d, "relationshipType": "depends-on", "reason": "beta first", "confidence": 0.8}]`,
		alpha.ID, beta.ID,
	)}}
	svc := newAutoLinkService(env, model)

	result, suggestions, err := svc.AutoLinkCanvas(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 0, result.Created)
	require.Len(t, suggestions, 1)

	total, err := env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	require.Zero(t, total)

	result, _, err = svc.AutoLinkCanvas(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	total, err = env.edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

func TestCommitSuggestionsMixed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "", "project")
	beta := createNote(t, env, "Beta", "", "project")
	gamma := createNote(t, env, "Gamma", "", "project")

	_, err := env.edgeRepo.Create(ctx, &domain.Edge{
		SourceNoteID:     alpha.ID,
		TargetNoteID:     beta.ID,
		RelationshipType: domain.RelationRelatedTo,
		IsManual:         true,
	})
	require.NoError(t, err)

	svc := newAutoLinkService(env, &scriptedModel{})
	result := svc.CommitSuggestions(ctx, []*domain.Suggestion{
		{SourceNoteID: alpha.ID, TargetNoteID: beta.ID, RelationshipType: domain.RelationRelatedTo, Confidence: 0.9},
		{SourceNoteID: alpha.ID, TargetNoteID: gamma.ID, RelationshipType: domain.RelationSupports, Reason: "evidence", Confidence: 0.8},
	})
	require.Equal(t, 1, result.Created)
	require.Equal(t, 1, result.Skipped)

	exists, err := env.edgeRepo.ExistsBetween(ctx, alpha.ID, gamma.ID)
	require.NoError(t, err)
	require.True(t, exists)
}
