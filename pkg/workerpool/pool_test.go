package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolSubmitRunsTask(t *testing.T) {
	cfg := Config{MaxWorkers: 2, QueueSize: 4}
	p := New(&cfg, nil)
	defer p.Shutdown(context.Background())

	var ran atomic.Bool
	err := p.Submit(context.Background(), func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran.Load())

	wantErr := errors.New("llm unreachable")
	err = p.Submit(context.Background(), func(ctx context.Context) error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestPoolSubmitAsync(t *testing.T) {
	p := New(nil, nil)
	defer p.Shutdown(context.Background())

	done := make(chan struct{})
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async task did not run")
	}
}

func TestPoolQueueFull(t *testing.T) {
	cfg := Config{MaxWorkers: 1, QueueSize: 1}
	p := New(&cfg, nil)
	defer p.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})

	// 占住唯一的 worker
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	// 占满容量为 1 的队列
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil }))

	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolFull)

	assert.Equal(t, int64(1), p.ActiveCount())
	assert.Equal(t, 1, p.QueuedCount())

	close(release)
}

func TestPoolSubmitContextTimeout(t *testing.T) {
	cfg := Config{MaxWorkers: 1, QueueSize: 2}
	p := New(&cfg, nil)
	defer p.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := p.Submit(ctx, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestPoolClosed(t *testing.T) {
	p := New(nil, nil)
	require.NoError(t, p.Shutdown(context.Background()))
	require.NoError(t, p.Shutdown(context.Background()), "shutdown must be idempotent")

	err := p.Submit(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)

	err = p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)

	assert.True(t, p.IsClosed())
}

func TestPoolShutdownWaitsForTasks(t *testing.T) {
	cfg := Config{MaxWorkers: 2, QueueSize: 4}
	p := New(&cfg, nil)

	var finished atomic.Bool
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	}))

	require.NoError(t, p.Shutdown(context.Background()))
	assert.True(t, finished.Load(), "shutdown must wait for in-flight tasks")
}

func TestPoolGetMetrics(t *testing.T) {
	cfg := Config{MaxWorkers: 4, QueueSize: 8}
	p := New(&cfg, nil)
	defer p.Shutdown(context.Background())

	m := p.GetMetrics()
	assert.Equal(t, 4, m.MaxWorkers)
	assert.Equal(t, 8, m.QueueCapacity)
	assert.Equal(t, int64(0), m.ActiveCount)
	assert.Equal(t, 0, m.QueuedCount)
	assert.False(t, m.IsClosed)
}
