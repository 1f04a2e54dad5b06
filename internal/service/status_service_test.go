package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nicoding1996/momentum-notes-sub000/pkg/workerpool"
	"github.com/Nicoding1996/momentum-notes-sub000/pkg/writequeue"

	"github.com/stretchr/testify/require"
)

func TestStatusCountsGraph(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	oceans := createNote(t, env, "Oceans", "studying [[Whales]] and [[Ghost Ship]] lore", "marine")
	createNote(t, env, "Whales", "", "marine")
	require.NotNil(t, oceans)

	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "graph.sqlite3"), []byte("0123456789"), 0644))

	svc := NewStatusService(env.noteRepo, env.linkRepo, env.edgeRepo, nil, nil, time.Now().Add(-2*time.Second), "1.2.3", dataDir)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.2.3", status.Version)
	require.NotEmpty(t, status.Uptime)
	require.Equal(t, int64(2), status.NoteCount)
	require.Equal(t, int64(2), status.LinkCount)
	require.Equal(t, int64(1), status.PendingLinks)
	require.Equal(t, int64(1), status.EdgeCount)
	require.Greater(t, status.Goroutines, 0)
	require.Greater(t, status.DiskUsedMB, 0.0)
}

func TestStatusReportsWorkerStats(t *testing.T) {
	env := newTestEnv(t)

	poolCfg := workerpool.Config{MaxWorkers: 3, QueueSize: 10}
	pool := workerpool.New(&poolCfg, nil)
	defer pool.Shutdown(context.Background())

	wq := writequeue.New(nil, nil)
	defer wq.Shutdown(context.Background())

	// 留下一条活跃写队列
	require.NoError(t, wq.Execute(context.Background(), 1, func() error { return nil }))

	svc := NewStatusService(env.noteRepo, env.linkRepo, env.edgeRepo, pool, wq, time.Now(), "dev", "")
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, status.Workers.PoolWorkers)
	require.Equal(t, 1, status.Workers.WriteQueues)
}

func TestStatusEmptyDataDirSkipsDiskStat(t *testing.T) {
	env := newTestEnv(t)

	svc := NewStatusService(env.noteRepo, env.linkRepo, env.edgeRepo, nil, nil, time.Now(), "dev", "")
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	require.Zero(t, status.DiskUsedMB)
}
