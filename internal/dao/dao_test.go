package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDao 在临时目录创建 sqlite 库并完成迁移
func newTestDao(t *testing.T) *Dao {
	t.Helper()

	c := &DatabaseConfig{
		Type:        "sqlite",
		Path:        filepath.Join(t.TempDir(), "test.sqlite3"),
		AutoMigrate: true,
	}
	db, err := NewDBEngine(c)
	require.NoError(t, err)

	return New(db, context.Background(), WithConfig(c))
}

func seedNote(t *testing.T, repo domain.NoteRepository, title, content string, tags ...string) *domain.Note {
	t.Helper()
	note, err := repo.Create(context.Background(), &domain.Note{
		Title:   title,
		Content: content,
		Tags:    tags,
	})
	require.NoError(t, err)
	return note
}

func TestNoteRepositoryCreateAndGet(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note := seedNote(t, repo, "Oceans", "Large bodies of salt water", "nature", "water")
	require.NotZero(t, note.ID)

	got, err := repo.GetByID(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oceans", got.Title)
	assert.Equal(t, []string{"nature", "water"}, got.Tags)

	// 标题查询忽略大小写
	got, err = repo.GetByTitle(ctx, "oCeAnS")
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
}

func TestNoteRepositorySoftDelete(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	note := seedNote(t, repo, "Tides", "Rise and fall of sea levels")
	require.NoError(t, repo.SoftDelete(ctx, note.ID))

	_, err := repo.GetByID(ctx, note.ID)
	assert.Error(t, err)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestLinkRepositoryCommitSync(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	linkRepo := NewLinkRepository(d)
	edgeRepo := NewEdgeRepository(d)
	ctx := context.Background()

	source := seedNote(t, noteRepo, "Oceans", "Study of [[Whales]] and [[Ghost]]")
	target := seedNote(t, noteRepo, "Whales", "Marine mammals")

	source.Content = "Study of [[Whales]] and [[Ghost]]"
	commit := &domain.SyncCommit{
		Note: source,
		InsertLinks: []*domain.Link{
			{SourceNoteID: source.ID, TargetNoteID: target.ID, TargetTitle: "Whales", TextOffset: 9, RelationshipType: domain.RelationReferences},
			{SourceNoteID: source.ID, TargetNoteID: 0, TargetTitle: "Ghost", TextOffset: 24, RelationshipType: domain.RelationReferences},
		},
		MirrorEdges: []*domain.Edge{
			{SourceNoteID: source.ID, TargetNoteID: target.ID, RelationshipType: domain.RelationReferences, Label: "References"},
		},
	}

	result, err := linkRepo.CommitSync(ctx, commit)
	require.NoError(t, err)
	assert.Equal(t, 2, result.LinksAdded)
	assert.Equal(t, 1, result.EdgesCreated)

	links, err := linkRepo.ListBySource(ctx, source.ID)
	require.NoError(t, err)
	assert.Len(t, links, 2)

	pending, err := linkRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	exists, err := edgeRepo.ExistsBetween(ctx, target.ID, source.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// 再次提交同对镜像连线不会重复创建
	again, err := linkRepo.CommitSync(ctx, &domain.SyncCommit{
		Note: source,
		MirrorEdges: []*domain.Edge{
			{SourceNoteID: target.ID, TargetNoteID: source.ID, RelationshipType: domain.RelationReferences},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, again.EdgesCreated)

	total, err := edgeRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestLinkRepositoryResolve(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	linkRepo := NewLinkRepository(d)
	ctx := context.Background()

	source := seedNote(t, noteRepo, "Oceans", "See [[Whale Songs]]")
	_, err := linkRepo.CommitSync(ctx, &domain.SyncCommit{
		Note: source,
		InsertLinks: []*domain.Link{
			{SourceNoteID: source.ID, TargetTitle: "Whale Songs", RelationshipType: domain.RelationReferences},
		},
	})
	require.NoError(t, err)

	pendingLinks, err := linkRepo.ListPendingByTitle(ctx, "whale songs")
	require.NoError(t, err)
	require.Len(t, pendingLinks, 1)

	target := seedNote(t, noteRepo, "Whale Songs", "Humpback vocalization")
	require.NoError(t, linkRepo.Resolve(ctx, pendingLinks[0].ID, target.ID))

	resolved, err := linkRepo.ListResolvedByTarget(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, source.ID, resolved[0].SourceNoteID)

	pending, err := linkRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)
}

func TestEdgeRepositoryCRUD(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	edgeRepo := NewEdgeRepository(d)
	ctx := context.Background()

	a := seedNote(t, noteRepo, "A", "")
	b := seedNote(t, noteRepo, "B", "")

	edge, err := edgeRepo.Create(ctx, &domain.Edge{
		SourceNoteID:     a.ID,
		TargetNoteID:     b.ID,
		RelationshipType: domain.RelationDependsOn,
		Label:            "Depends on",
		IsManual:         true,
	})
	require.NoError(t, err)
	require.NotZero(t, edge.ID)

	// 方向无关的存在性检查
	exists, err := edgeRepo.ExistsBetween(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	edge.RelationshipType = domain.RelationSupports
	edge.Label = "Supports"
	require.NoError(t, edgeRepo.Update(ctx, edge))

	got, err := edgeRepo.GetByID(ctx, edge.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RelationSupports, got.RelationshipType)
	assert.True(t, got.IsManual)

	require.NoError(t, edgeRepo.Delete(ctx, edge.ID))
	exists, err = edgeRepo.ExistsBetween(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNoteHistoryRepositoryVersions(t *testing.T) {
	d := newTestDao(t)
	noteRepo := NewNoteRepository(d)
	historyRepo := NewNoteHistoryRepository(d)
	ctx := context.Background()

	note := seedNote(t, noteRepo, "Whales", "v1")

	for i := int64(1); i <= 3; i++ {
		_, err := historyRepo.Create(ctx, &domain.NoteHistory{
			NoteID:  note.ID,
			Title:   "Whales",
			Content: "version",
			Version: i,
		})
		require.NoError(t, err)
	}

	latest, err := historyRepo.GetLatestVersion(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), latest)

	// 保留最近 2 个版本
	cutoff := time.Now().Add(time.Hour)
	require.NoError(t, historyRepo.DeleteOldVersions(ctx, note.ID, cutoff, 2))

	list, total, err := historyRepo.ListByNoteID(ctx, note.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].Version)
}
