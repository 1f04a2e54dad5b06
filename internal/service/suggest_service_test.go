package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/code"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/llm"
	"github.com/stretchr/testify/require"
)

// scriptedModel 按脚本回放答复的模型客户端
type scriptedModel struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	prompts []string

	entered chan struct{} // 每次进入 Complete 时发信号
	gate    chan struct{} // 非 nil 时阻塞到通道关闭
}

func (m *scriptedModel) Complete(ctx context.Context, system, user string) (string, error) {
	m.mu.Lock()
	idx := m.calls
	m.calls++
	m.prompts = append(m.prompts, user)
	reply := ""
	if len(m.replies) > 0 {
		if idx >= len(m.replies) {
			idx = len(m.replies) - 1
		}
		reply = m.replies[idx]
	}
	err := m.err
	entered := m.entered
	gate := m.gate
	m.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (m *scriptedModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *scriptedModel) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// newSuggestService 启用 AI 配置并构建建议服务
func newSuggestService(env *testEnv, model llm.Client) SuggestService {
	env.config.AI.Enable = true
	return NewSuggestService(env.noteRepo, env.rankSvc, model, env.config)
}

func TestSuggestValidatedReply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "Blue water everywhere", "marine")
	whales := createNote(t, env, "Whales", "Large marine mammals", "marine")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": %d, "relationshipType": "related-to", "reason": "both marine topics", "confidence": 0.9}]`,
		whales.ID,
	)}}
	svc := newSuggestService(env, model)

	items, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, oceans.ID, items[0].SourceNoteID)
	require.Equal(t, whales.ID, items[0].TargetNoteID)
	require.Equal(t, "Whales", items[0].TargetTitle)
	require.Equal(t, domain.RelationRelatedTo, items[0].RelationshipType)
	require.Equal(t, "both marine topics", items[0].Reason)
	require.InDelta(t, 0.9, items[0].Confidence, 1e-9)

	require.Equal(t, 1, model.callCount())
	require.Contains(t, model.lastPrompt(), `Current note: "Oceans"`)
	require.Contains(t, model.lastPrompt(), fmt.Sprintf("id=%d", whales.ID))
}

func TestSuggestProseWrappedReply(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		"Sure thing! Here are some ideas:\n[{\"id\": %d, \"relationshipType\": \"supports\", \"reason\": \"shared habitat\", \"confidence\": 0.8}]\nHope that helps.",
		whales.ID,
	)}}
	svc := newSuggestService(env, model)

	items, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, whales.ID, items[0].TargetNoteID)
	require.Equal(t, domain.RelationSupports, items[0].RelationshipType)
}

func TestSuggestMalformedReplyYieldsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	createNote(t, env, "Whales", "", "marine")

	for _, reply := range []string{
		"I could not find any meaningful connections, sorry.",
		"Here you go: [this is not json at all]",
		"",
	} {
		model := &scriptedModel{replies: []string{reply}}
		svc := newSuggestService(env, model)

		items, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
		require.NoError(t, err)
		require.Empty(t, items)
	}
}

func TestSuggestDropsUnknownLowAndClamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")
	rocks := createNote(t, env, "Rocks", "", "geology")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": 9999, "relationshipType": "related-to", "confidence": 0.95},
		  {"id": %d, "relationshipType": "related-to", "confidence": 0.2},
		  {"id": %d, "relationshipType": "references", "confidence": 3.5}]`,
		whales.ID, rocks.ID,
	)}}
	svc := newSuggestService(env, model)

	items, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, rocks.ID, items[0].TargetNoteID)
	require.Equal(t, domain.RelationReferences, items[0].RelationshipType)
	require.Equal(t, 1.0, items[0].Confidence)
}

func TestSuggestNormalizesRelationshipType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")
	rocks := createNote(t, env, "Rocks", "", "geology")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": %d, "relationshipType": "SUPPORTS", "confidence": 0.9},
		  {"id": %d, "relationshipType": "totally-made-up", "confidence": 0.9}]`,
		whales.ID, rocks.ID,
	)}}
	svc := newSuggestService(env, model)

	items, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
	require.NoError(t, err)
	require.Len(t, items, 2)
	byTarget := map[int64]domain.RelationshipType{}
	for _, it := range items {
		byTarget[it.TargetNoteID] = it.RelationshipType
	}
	require.Equal(t, domain.RelationSupports, byTarget[whales.ID])
	require.Equal(t, domain.RelationRelatedTo, byTarget[rocks.ID])
}

func TestSuggestDuplicateTargetDeduped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	whales := createNote(t, env, "Whales", "", "marine")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"id": %d, "relationshipType": "related-to", "confidence": 0.9},
		  {"id": %d, "relationshipType": "supports", "confidence": 0.8}]`,
		whales.ID, whales.ID,
	)}}
	svc := newSuggestService(env, model)

	items, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.InDelta(t, 0.9, items[0].Confidence, 1e-9)
}

func TestSuggestDisabled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Oceans", "", "marine")

	disabled := NewSuggestService(env.noteRepo, env.rankSvc, &scriptedModel{}, env.config)
	_, err := disabled.Suggest(ctx, note.ID, TriggerManual)
	assertCode(t, err, code.ErrorAIDisabled)

	noClient := newSuggestService(env, nil)
	_, err = noClient.Suggest(ctx, note.ID, TriggerManual)
	assertCode(t, err, code.ErrorAIDisabled)
}

func TestSuggestModelErrorSurfaced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	createNote(t, env, "Whales", "", "marine")

	model := &scriptedModel{err: errors.New("backend exploded")}
	svc := newSuggestService(env, model)

	_, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
	assertCode(t, err, code.ErrorAIService)
}

func TestSuggestNoteNotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := newSuggestService(env, &scriptedModel{})

	_, err := svc.Suggest(context.Background(), 4242, TriggerManual)
	assertCode(t, err, code.ErrorNoteNotFound)
}

func TestSuggestNoCandidatesSkipsModel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	note := createNote(t, env, "Lonely", "Nothing else here")

	model := &scriptedModel{}
	svc := newSuggestService(env, model)

	items, err := svc.Suggest(ctx, note.ID, TriggerManual)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, 0, model.callCount())
}

func TestSuggestSingleFlightPerNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oceans := createNote(t, env, "Oceans", "", "marine")
	createNote(t, env, "Whales", "", "marine")

	model := &scriptedModel{
		replies: []string{"[]"},
		entered: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	svc := newSuggestService(env, model)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
		done <- err
	}()

	<-model.entered
	_, err := svc.Suggest(ctx, oceans.ID, TriggerManual)
	assertCode(t, err, code.ErrorSuggestionInFlight)

	close(model.gate)
	require.NoError(t, <-done)
}

func TestSuggestAutoRateLimited(t *testing.T) {
	env := newTestEnv(t)
	env.config.AI.AutoRateLimit = time.Hour
	ctx := context.Background()
	note := createNote(t, env, "Lonely", "")

	svc := newSuggestService(env, &scriptedModel{})

	_, err := svc.Suggest(ctx, note.ID, TriggerAuto)
	require.NoError(t, err)

	_, err = svc.Suggest(ctx, note.ID, TriggerAuto)
	assertCode(t, err, code.ErrorSuggestionRateLimited)

	// 手动触发不受自动间隔限制
	_, err = svc.Suggest(ctx, note.ID, TriggerManual)
	require.NoError(t, err)
}

func TestSuggestAutoAllowedAfterInterval(t *testing.T) {
	env := newTestEnv(t)
	env.config.AI.AutoRateLimit = 30 * time.Millisecond
	ctx := context.Background()
	note := createNote(t, env, "Lonely", "")

	svc := newSuggestService(env, &scriptedModel{})

	_, err := svc.Suggest(ctx, note.ID, TriggerAuto)
	require.NoError(t, err)
	_, err = svc.Suggest(ctx, note.ID, TriggerAuto)
	assertCode(t, err, code.ErrorSuggestionRateLimited)

	time.Sleep(60 * time.Millisecond)
	_, err = svc.Suggest(ctx, note.ID, TriggerAuto)
	require.NoError(t, err)
}

func TestSuggestCanvasValidatesPairs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := createNote(t, env, "Alpha", "", "project")
	beta := createNote(t, env, "Beta", "", "project")
	createNote(t, env, "Gamma", "", "project")

	model := &scriptedModel{replies: []string{fmt.Sprintf(
		`[{"sourceId": %d, "targetId": %d, "relationshipType": "depends-on", "reason": "beta first", "confidence": 0.8},
		  {"sourceId": %d, "targetId": %d, "relationshipType": "related-to", "confidence": 0.9},
		  {"sourceId": %d, "targetId": %d, "confidence": 0.9},
		  {"sourceId": %d, "targetId": 9999, "confidence": 0.9}]`,
		alpha.ID, beta.ID,
		beta.ID, alpha.ID,
		alpha.ID, alpha.ID,
		alpha.ID,
	)}}
	svc := newSuggestService(env, model)

	items, err := svc.SuggestCanvas(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, alpha.ID, items[0].SourceNoteID)
	require.Equal(t, beta.ID, items[0].TargetNoteID)
	require.Equal(t, "Beta", items[0].TargetTitle)
	require.Equal(t, domain.RelationDependsOn, items[0].RelationshipType)
}

func TestSuggestCanvasTooFewNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	createNote(t, env, "Lonely", "")

	model := &scriptedModel{}
	svc := newSuggestService(env, model)

	items, err := svc.SuggestCanvas(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, 0, model.callCount())
}
