package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 验证 PendingSuggests 的检查-登记操作是原子的

func TestPendingSuggestsAtomicAcquire(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// 并发访问时，每个笔记的建议登记只能成功一次
	properties.Property("each note acquired exactly once under concurrent access", prop.ForAll(
		func(noteCount int) bool {
			if noteCount <= 0 {
				return true
			}

			noteIDs := make([]int64, noteCount)
			for i := 0; i < noteCount; i++ {
				noteIDs[i] = int64(i + 1)
			}

			client := &WebsocketClient{}

			// 记录每个笔记被成功登记的次数
			acquireCount := make(map[int64]*int32)
			for _, id := range noteIDs {
				var count int32 = 0
				acquireCount[id] = &count
			}

			var wg sync.WaitGroup
			goroutines := 10

			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for _, id := range noteIDs {
						if client.TryAcquireSuggest(id) {
							atomic.AddInt32(acquireCount[id], 1)
						}
					}
				}()
			}

			wg.Wait()

			for _, id := range noteIDs {
				if *acquireCount[id] != 1 {
					t.Logf("Note %d acquired %d times, expected 1", id, *acquireCount[id])
					return false
				}
			}

			return true
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

// 验证超时清理机制

func TestPendingSuggestsCleanup(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// 超时条目被清理，未超时条目保留
	properties.Property("expired entries are cleaned, non-expired are kept", prop.ForAll(
		func(expiredCount, nonExpiredCount int) bool {
			client := &WebsocketClient{
				PendingSuggests: make(map[int64]PendingEntry),
			}

			timeout := 100 * time.Millisecond
			now := time.Now()

			// 添加过期条目
			for i := 0; i < expiredCount; i++ {
				client.PendingSuggests[int64(i+1)] = PendingEntry{
					CreatedAt: now.Add(-timeout - time.Second), // 已过期
				}
			}

			// 添加未过期条目
			for i := 0; i < nonExpiredCount; i++ {
				client.PendingSuggests[int64(1000+i)] = PendingEntry{
					CreatedAt: now, // 未过期
				}
			}

			cleaned := client.CleanupExpiredPendingSuggests(timeout)

			if cleaned != expiredCount {
				t.Logf("Cleaned %d, expected %d", cleaned, expiredCount)
				return false
			}

			if len(client.PendingSuggests) != nonExpiredCount {
				t.Logf("Remaining %d, expected %d", len(client.PendingSuggests), nonExpiredCount)
				return false
			}

			return true
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

// 单元测试: PendingSuggests 基本操作
func TestPendingSuggestsBasicOperations(t *testing.T) {
	client := &WebsocketClient{}

	noteID := int64(42)

	if !client.TryAcquireSuggest(noteID) {
		t.Error("First acquire should succeed")
	}

	if client.TryAcquireSuggest(noteID) {
		t.Error("Second acquire should fail while pending")
	}

	client.ReleaseSuggest(noteID)

	if !client.TryAcquireSuggest(noteID) {
		t.Error("Acquire should succeed again after release")
	}
}

// 单元测试: ClearAllPendingSuggests
func TestClearAllPendingSuggests(t *testing.T) {
	client := &WebsocketClient{
		PendingSuggests: make(map[int64]PendingEntry),
	}

	ids := []int64{1, 2, 3}
	for _, id := range ids {
		client.PendingSuggests[id] = PendingEntry{CreatedAt: time.Now()}
	}

	count := client.ClearAllPendingSuggests()

	if count != len(ids) {
		t.Errorf("ClearAllPendingSuggests() = %d, want %d", count, len(ids))
	}

	if len(client.PendingSuggests) != 0 {
		t.Errorf("PendingSuggests should be empty after clear, got %d", len(client.PendingSuggests))
	}
}

// 单元测试: CleanupExpiredPendingSuggests
func TestCleanupExpiredPendingSuggests(t *testing.T) {
	client := &WebsocketClient{
		PendingSuggests: make(map[int64]PendingEntry),
	}

	timeout := 50 * time.Millisecond

	client.PendingSuggests[1] = PendingEntry{
		CreatedAt: time.Now().Add(-100 * time.Millisecond),
	}

	client.PendingSuggests[2] = PendingEntry{
		CreatedAt: time.Now(),
	}

	cleaned := client.CleanupExpiredPendingSuggests(timeout)

	if cleaned != 1 {
		t.Errorf("CleanupExpiredPendingSuggests() = %d, want 1", cleaned)
	}

	if len(client.PendingSuggests) != 1 {
		t.Errorf("Should have 1 remaining entry, got %d", len(client.PendingSuggests))
	}

	if _, exists := client.PendingSuggests[2]; !exists {
		t.Error("Non-expired entry should still exist")
	}
}
