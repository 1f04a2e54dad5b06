package writequeue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSerializesSameNote(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), 1, func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
		// 提交间隔保证入队顺序确定
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	require.Len(t, order, 10)
	for i, v := range order {
		assert.Equal(t, i, v, "operations for the same note must run in FIFO order")
	}
}

func TestManagerIndependentNotes(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = m.Execute(context.Background(), 1, func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// 另一个笔记的写操作不被阻塞
	done := make(chan error, 1)
	go func() {
		done <- m.Execute(context.Background(), 2, func() error { return nil })
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("write for another note should not wait behind note 1")
	}

	close(release)
}

func TestManagerPropagatesError(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	wantErr := errors.New("disk full")
	err := m.Execute(context.Background(), 7, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestManagerQueueFull(t *testing.T) {
	cfg := Config{QueueCapacity: 1, WriteTimeout: 5 * time.Second, IdleTimeout: time.Minute}
	m := New(&cfg, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = m.Execute(context.Background(), 3, func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// 占满容量为 1 的队列
	go func() {
		_ = m.Execute(context.Background(), 3, func() error { return nil })
	}()
	time.Sleep(100 * time.Millisecond)

	err := m.Execute(context.Background(), 3, func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueFull)

	assert.Equal(t, 1, m.QueuedCount(3))
	metrics := m.GetMetrics()
	assert.Equal(t, 1, metrics.QueueCapacity)
	assert.Equal(t, 1, metrics.ActiveQueues)
	assert.False(t, metrics.IsClosed)

	close(release)
}

func TestManagerClosed(t *testing.T) {
	m := New(nil, nil)
	require.NoError(t, m.Shutdown(context.Background()))

	err := m.Execute(context.Background(), 1, func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
	assert.True(t, m.IsClosed())
}
